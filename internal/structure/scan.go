// Package structure extracts declaration headers from a token stream.
//
// It recognises only what the Resource Table needs (name and kind of each
// declaration) and skips everything else, bodies included, by bracket matching.
// No grammar is validated here: a keyword that is not followed by a name is
// ignored, and unknown tokens are stepped over.
package structure

import (
	"fire/internal/namespace"
	"fire/internal/resource"
	"fire/internal/token"
)

// scope says how a 'fn' found at this level is classified.
type scope uint8

const (
	scopeTop scope = iota // файл или group
	scopeStruct
	scopeTrait
	scopeImpl
)

type scanner struct {
	toks    []token.Token
	pos     int
	file    string
	private bool
	out     []resource.Stub
}

// Scan returns the stubs declared in one file, in source order.
// prefix is the file's namespace (directories plus file stem).
func Scan(prefix namespace.Path, file string, toks []token.Token) []resource.Stub {
	s := &scanner{toks: toks, file: file}
	s.block(prefix, scopeTop, false)
	return s.out
}

func (s *scanner) peek() token.Token {
	if s.pos >= len(s.toks) {
		return token.Token{Kind: token.EOF}
	}
	return s.toks[s.pos]
}

func (s *scanner) next() token.Token {
	t := s.peek()
	if s.pos < len(s.toks) {
		s.pos++
	}
	return t
}

func (s *scanner) add(path namespace.Path, kind resource.Kind, at token.Token) {
	s.out = append(s.out, resource.Stub{
		Path:    path,
		Kind:    kind,
		File:    s.file,
		Pos:     at.Pos,
		Span:    at.Span,
		Private: s.private,
	})
	s.private = false
}

// block сканирует объявления до закрывающей '}' (nested) или до конца потока.
// Закрывающую скобку не потребляет.
func (s *scanner) block(prefix namespace.Path, sc scope, nested bool) {
	for {
		t := s.peek()
		switch t.Kind {
		case token.EOF:
			return
		case token.CloseBrace:
			if nested {
				return
			}
			s.next() // лишняя '}' на верхнем уровне
		case token.KwPrivate:
			s.next()
			s.private = true
		case token.Annotation:
			s.next()
			if s.peek().Kind == token.OpenParen {
				s.skipBalanced()
			}
		case token.KwImport:
			s.next()
			s.skipImportPath()
		case token.KwFn, token.KwPc:
			s.next()
			s.routine(prefix, sc, t.Kind == token.KwPc)
		case token.KwLet, token.KwConst:
			s.next()
			// поля внутри struct/trait/impl ресурсами не считаются
			if name, ok := s.name(token.Ident); ok && sc == scopeTop {
				s.add(prefix.Child(name.Text), resource.Var, name)
			}
			s.private = false
			s.skipRest()
		case token.KwStruct:
			s.next()
			s.typeDecl(prefix, resource.Struct, scopeStruct)
		case token.KwTrait:
			s.next()
			s.typeDecl(prefix, resource.Trait, scopeTrait)
		case token.KwEnum:
			s.next()
			s.enumDecl(prefix)
		case token.KwImpl:
			s.next()
			s.implDecl(prefix)
		case token.KwGroup:
			s.next()
			s.groupDecl(prefix)
		case token.OpenBrace, token.OpenParen, token.OpenBracket:
			s.private = false
			s.skipBalanced()
		default:
			s.private = false
			s.next()
		}
	}
}

// name потребляет имя нужного вида; иначе объявление игнорируется.
func (s *scanner) name(kinds ...token.Kind) (token.Token, bool) {
	t := s.peek()
	for _, k := range kinds {
		if t.Kind == k {
			s.next()
			return t, true
		}
	}
	s.private = false
	return t, false
}

func (s *scanner) routine(prefix namespace.Path, sc scope, process bool) {
	name, ok := s.name(token.Ident)
	if !ok {
		return
	}
	kind := resource.Function
	switch {
	case process:
		kind = resource.Process
	case sc == scopeStruct || sc == scopeImpl:
		kind = resource.Method
	case sc == scopeTrait:
		kind = resource.AbstractMethod
	}
	s.add(prefix.Child(name.Text), kind, name)
	s.skipRest()
}

// typeDecl: struct/trait Name [: supertypes] { members }
func (s *scanner) typeDecl(prefix namespace.Path, kind resource.Kind, sc scope) {
	name, ok := s.name(token.Type)
	if !ok {
		return
	}
	path := prefix.Child(name.Text)
	s.add(path, kind, name)
	if s.toBody() {
		s.body(path, sc)
	}
}

// enumDecl: enum Name [: T] { A = 1, B, ... }
func (s *scanner) enumDecl(prefix namespace.Path) {
	name, ok := s.name(token.Type)
	if !ok {
		return
	}
	path := prefix.Child(name.Text)
	s.add(path, resource.Enum, name)
	if !s.toBody() {
		return
	}
	s.next() // '{'
	entryStart := true
	for {
		t := s.peek()
		switch t.Kind {
		case token.EOF:
			return
		case token.CloseBrace:
			s.next()
			return
		case token.Comma:
			s.next()
			entryStart = true
		case token.OpenBrace, token.OpenParen, token.OpenBracket:
			s.skipBalanced()
			entryStart = false
		case token.Type, token.Ident:
			s.next()
			if entryStart {
				s.add(path.Child(t.Text), resource.EnumConst, t)
			}
			entryStart = false
		default:
			s.next()
			entryStart = false
		}
	}
}

// implDecl: impl [Trait for] Name { fn ... }
func (s *scanner) implDecl(prefix namespace.Path) {
	var target token.Token
	found := false
	for {
		t := s.peek()
		if t.Kind == token.OpenBrace || t.Kind == token.EOF || t.Kind == token.CloseBrace || s.startsDecl() {
			break
		}
		s.next()
		switch t.Kind {
		case token.Type:
			if !found {
				target, found = t, true
			}
		case token.KwFor:
			found = false // цель impl — тип после 'for'
		}
	}
	s.private = false
	if !found || s.peek().Kind != token.OpenBrace {
		return
	}
	s.body(prefix.Child(target.Text), scopeImpl)
}

// groupDecl: group name { declarations }
func (s *scanner) groupDecl(prefix namespace.Path) {
	name, ok := s.name(token.Ident)
	if !ok {
		return
	}
	s.private = false
	if s.toBody() {
		s.body(prefix.Child(name.Text), scopeTop)
	}
}

// body сканирует {...}; курсор стоит на '{'.
func (s *scanner) body(path namespace.Path, sc scope) {
	s.next() // '{'
	s.block(path, sc, true)
	if s.peek().Kind == token.CloseBrace {
		s.next()
	}
}

// toBody пропускает заголовок до '{' тела. false, если тела нет.
func (s *scanner) toBody() bool {
	for {
		switch s.peek().Kind {
		case token.OpenBrace:
			return true
		case token.OpenParen, token.OpenBracket:
			s.skipBalanced()
		case token.EOF, token.CloseBrace:
			return false
		default:
			if s.startsDecl() {
				return false
			}
			s.next()
		}
	}
}

// skipRest пропускает остаток объявления: параметры, тип результата и тело.
// Останавливается перед следующим объявлением или закрывающей '}' уровня.
func (s *scanner) skipRest() {
	for {
		switch s.peek().Kind {
		case token.OpenBrace:
			s.skipBalanced()
			return
		case token.OpenParen, token.OpenBracket:
			s.skipBalanced()
		case token.EOF, token.CloseBrace:
			return
		default:
			if s.startsDecl() {
				return
			}
			s.next()
		}
	}
}

func (s *scanner) startsDecl() bool {
	t := s.peek()
	return t.IsDeclStart() || t.Kind == token.KwPrivate || t.Kind == token.Annotation || t.Kind == token.KwImport
}

// skipImportPath: import a::b::C, import a::{b, c}
func (s *scanner) skipImportPath() {
	for {
		switch s.peek().Kind {
		case token.Ident, token.Type, token.SelfType, token.KwSelf, token.Accesser, token.Multiply:
			s.next()
		case token.OpenBrace:
			s.skipBalanced()
		default:
			return
		}
	}
}

// skipBalanced пропускает группу скобок, начиная с открывающей.
// Незакрытая группа съедает всё до конца потока.
func (s *scanner) skipBalanced() {
	var stack []token.Kind
	for {
		t := s.next()
		if t.Kind == token.EOF {
			return
		}
		if closer, ok := t.Kind.Opens(); ok {
			stack = append(stack, closer)
			continue
		}
		if len(stack) > 0 && t.Kind == stack[len(stack)-1] {
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return
			}
		}
	}
}
