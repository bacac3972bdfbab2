// Package fuzztests houses Go fuzz harnesses for the Fire front end
// (source -> lexer -> structure). They guard against panics and broken
// span invariants on arbitrary input.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
