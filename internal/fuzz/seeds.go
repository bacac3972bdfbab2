package fuzztests

import "testing"

const maxSeedBytes = 64 << 10 // 64 KiB — ограничение для корпуса

var languageSeeds = []string{
	"",
	"fn main() {}\n",
	"import std::io\nimport game::{ui, audio}\n",
	"@inline\nfn add(a: Int, b: Int): Int { a + b }\n",
	"pc tick(dt: Float) { let x = 0x1F }\n",
	"private let counter = 0\nconst limit = 0b1010\n",
	"struct Player : Entity {\n    hp: Int\n    fn hit(self, dmg: Int) { self.hp -= dmg }\n}\n",
	"trait Entity {\n    fn update(self, dt: Float)\n}\n",
	"enum Color : Int { Red = 1, Green = (2 + 3), blue }\n",
	"impl Entity for Player { fn update(self, dt: Float) {} }\n",
	"group ui {\n    group widgets { struct Button {} }\n}\n",
	"let s = \"esc \\n \\t \\\" \\\\ \"\nlet c = 'x'\n",
	"/* block\n comment */ // line\nlet f = 3.25\n",
	"let имя = \"ж\"\n",
	"fn a() { fn b() {}\n",
	"let s = \"unterminated\n",
	"fn $",
	"/* never closed",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range languageSeeds {
		f.Add(clampSeed([]byte(s)))
	}
}

func clampSeed(src []byte) []byte {
	if len(src) > maxSeedBytes {
		src = src[:maxSeedBytes]
	}
	return append([]byte(nil), src...)
}
