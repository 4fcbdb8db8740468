package board

// Sample positions used by tests in this and other packages.

// VsDarkStuck is a position where Dark has no legal move but Light does.
// Dark's discs sit at a1 and e5; every line into them is either fully
// occupied or broken by an empty cell, while Light can still capture e5
// (for example at f6).
var VsDarkStuck = mustFromText(`
	X O O O O O O O
	O O . . . . . .
	O . O . . . . .
	O . . O . . . .
	O . . . X . . .
	O . . . . . . .
	O . . . . . . .
	O . . . . . . .
`)

// VsMidgame is a roughly balanced midgame position used by evaluation and
// hashing tests.
var VsMidgame = mustFromText(`
	. . . . . . . .
	. . . X . . . .
	. . X X X . . .
	. . X O O O . .
	. . X X O . . .
	. . . O O O . .
	. . . . . . . .
	. . . . . . . .
`)

// VsFullBoard has no empty cells at all; it is trivially terminal. Dark
// holds a small disc majority (33-31).
var VsFullBoard = mustFromText(`
	X X X X X X X X
	X X O O O O X X
	X O X O O X O X
	X O O X X O O X
	X O O X X O O X
	X O X O O X O X
	X X O O O O X X
	X O O O O O O O
`)

func mustFromText(text string) Board {
	b, err := FromText(text)
	if err != nil {
		panic(err)
	}
	return b
}
