package colors

// package colors contains functions to quickly and easily generate raymaze.RGB instances by name (i.e. "White()", "Blue()", "Wall()", etc).

import "github.com/solarlune/raymaze"

// White generates a raymaze.RGB instance of the provided name.
func White() raymaze.RGB {
	return raymaze.NewRGB(255, 255, 255)
}

// Black generates a raymaze.RGB instance of the provided name.
func Black() raymaze.RGB {
	return raymaze.NewRGB(0, 0, 0)
}

// Gray generates a raymaze.RGB instance of the provided name.
func Gray() raymaze.RGB {
	return raymaze.NewRGB(0x80, 0x80, 0x80)
}

// LightGray generates a raymaze.RGB instance of the provided name.
func LightGray() raymaze.RGB {
	return raymaze.NewRGB(0xcc, 0xcc, 0xcc)
}

// DarkGray generates a raymaze.RGB instance of the provided name.
func DarkGray() raymaze.RGB {
	return raymaze.NewRGB(0x33, 0x33, 0x33)
}

// Red generates a raymaze.RGB instance of the provided name.
func Red() raymaze.RGB {
	return raymaze.NewRGB(255, 0, 0)
}

// Orange generates a raymaze.RGB instance of the provided name.
func Orange() raymaze.RGB {
	return raymaze.NewRGB(255, 0x80, 0)
}

// Yellow generates a raymaze.RGB instance of the provided name.
func Yellow() raymaze.RGB {
	return raymaze.NewRGB(255, 255, 0)
}

// Green generates a raymaze.RGB instance of the provided name.
func Green() raymaze.RGB {
	return raymaze.NewRGB(0, 255, 0)
}

// SkyBlue generates a raymaze.RGB instance of the provided name.
func SkyBlue() raymaze.RGB {
	return raymaze.NewRGB(0, 0x80, 255)
}

// Blue generates a raymaze.RGB instance of the provided name.
func Blue() raymaze.RGB {
	return raymaze.NewRGB(0, 0, 255)
}

// Purple generates a raymaze.RGB instance of the provided name.
func Purple() raymaze.RGB {
	return raymaze.NewRGB(0x80, 0, 255)
}

// Wall is the earthy brown used for labyrinth wall tiles.
func Wall() raymaze.RGB {
	return raymaze.NewRGB(0x61, 0x40, 0x20)
}

// Floor is the dusky purple used for labyrinth floor tiles.
func Floor() raymaze.RGB {
	return raymaze.NewRGB(0x40, 0x20, 0x61)
}
