package content

import (
	"math/rand"

	"themeclash/internal/models"
)

// fallbackPuzzles is the pre-authored table used when the generator is
// unavailable. Players never see a hard failure because of the provider.
var fallbackPuzzles = []models.PuzzleContent{
	{
		Theme: "BASEBALL",
		Words: []models.WordEntry{
			{Answer: "PITCHER", Clue: "Player who throws the ball to start play"},
			{Answer: "STRIKE", Clue: "When the batter misses or doesn't swing"},
			{Answer: "DIAMOND", Clue: "Shape of the playing field"},
			{Answer: "GLOVE", Clue: "Leather hand protection for catching"},
			{Answer: "HOMERUN", Clue: "Hitting the ball over the fence"},
		},
	},
	{
		Theme: "PIZZA",
		Words: []models.WordEntry{
			{Answer: "CHEESE", Clue: "Dairy product that melts on top"},
			{Answer: "TOMATO", Clue: "Red fruit used for sauce"},
			{Answer: "SLICE", Clue: "Triangular piece you eat"},
			{Answer: "CRUST", Clue: "Baked dough on the bottom"},
			{Answer: "OVEN", Clue: "Hot appliance for baking"},
		},
	},
	{
		Theme: "VOLCANO",
		Words: []models.WordEntry{
			{Answer: "LAVA", Clue: "Molten rock flowing down the sides"},
			{Answer: "ERUPTION", Clue: "Explosive event from the crater"},
			{Answer: "MOUNTAIN", Clue: "Large natural elevation of earth"},
			{Answer: "MAGMA", Clue: "Hot liquid rock underground"},
			{Answer: "ASH", Clue: "Fine powder particles in the air"},
		},
	},
	{
		Theme: "MOVIES",
		Words: []models.WordEntry{
			{Answer: "SCREEN", Clue: "Large white surface for projection"},
			{Answer: "POPCORN", Clue: "Popular buttery snack"},
			{Answer: "ACTOR", Clue: "Person who plays a character"},
			{Answer: "THEATER", Clue: "Building where films are shown"},
			{Answer: "DIRECTOR", Clue: "Person who leads the film production"},
		},
	},
	{
		Theme: "ELEPHANT",
		Words: []models.WordEntry{
			{Answer: "TRUNK", Clue: "Long flexible nose appendage"},
			{Answer: "IVORY", Clue: "White material from tusks"},
			{Answer: "AFRICA", Clue: "Continent where they live wild"},
			{Answer: "GRAY", Clue: "Their typical skin color"},
			{Answer: "MAMMAL", Clue: "Class of warm-blooded animals"},
		},
	},
	{
		Theme: "GUITAR",
		Words: []models.WordEntry{
			{Answer: "STRINGS", Clue: "Six thin wires you pluck"},
			{Answer: "CHORDS", Clue: "Multiple notes played together"},
			{Answer: "ROCK", Clue: "Genre of loud music"},
			{Answer: "ACOUSTIC", Clue: "Type without electrical amplification"},
			{Answer: "FRET", Clue: "Metal bars along the neck"},
		},
	},
	{
		Theme: "DOCTOR",
		Words: []models.WordEntry{
			{Answer: "HOSPITAL", Clue: "Medical facility for treatment"},
			{Answer: "PATIENT", Clue: "Person receiving medical care"},
			{Answer: "MEDICINE", Clue: "Drugs prescribed for illness"},
			{Answer: "SURGERY", Clue: "Operation to fix internal problems"},
			{Answer: "NURSE", Clue: "Healthcare worker assisting physicians"},
		},
	},
	{
		Theme: "AIRPLANE",
		Words: []models.WordEntry{
			{Answer: "PILOT", Clue: "Person who flies the aircraft"},
			{Answer: "WINGS", Clue: "Large appendages for lift"},
			{Answer: "TAKEOFF", Clue: "Leaving the ground to fly"},
			{Answer: "FLIGHT", Clue: "Journey through the air"},
			{Answer: "LUGGAGE", Clue: "Bags and suitcases you bring"},
		},
	},
	{
		Theme: "OCEAN",
		Words: []models.WordEntry{
			{Answer: "WAVES", Clue: "Rolling movements of water"},
			{Answer: "SALT", Clue: "Mineral that makes it taste different"},
			{Answer: "FISH", Clue: "Swimming creatures with gills"},
			{Answer: "CORAL", Clue: "Colorful underwater reef builders"},
			{Answer: "TIDE", Clue: "Daily rise and fall of water level"},
		},
	},
	{
		Theme: "BIRTHDAY",
		Words: []models.WordEntry{
			{Answer: "CAKE", Clue: "Sweet dessert with frosting"},
			{Answer: "CANDLES", Clue: "You blow these out and make a wish"},
			{Answer: "GIFTS", Clue: "Wrapped presents from friends"},
			{Answer: "PARTY", Clue: "Celebration with guests"},
			{Answer: "BALLOONS", Clue: "Inflated decorations that float"},
		},
	},
}

// fallbackPuzzle returns a copy of a random pre-authored puzzle.
func fallbackPuzzle() *models.PuzzleContent {
	src := fallbackPuzzles[rand.Intn(len(fallbackPuzzles))]
	puzzle := src
	puzzle.Words = make([]models.WordEntry, len(src.Words))
	copy(puzzle.Words, src.Words)
	return &puzzle
}
