// Name pools for master-data generation. Pools are fixed so that, combined
// with a seeded random source, generated names are reproducible run to run.

package masterdata

import "github.com/eposforge/epos-datagen/internal/model"

// houseVenues are the first eight venue names, matched to the default
// 3/3/2 restaurant/bar/pub split order.
var houseVenues = []string{
	"Riverside Bistro",
	"Downtown Taproom",
	"The Oak & Barrel",
	"Garden Terrace",
	"Sunset Lounge",
	"The Local Tavern",
	"Harbour View",
	"The Craft House",
}

var venueAdjectives = []string{
	"Copper", "Ivy", "Harbour", "Velvet", "Amber", "Willow", "Granite", "Crown",
}

var venueNouns = []string{
	"Kitchen", "Lounge", "Arms", "Cellar", "Terrace", "Tap", "Larder", "Snug",
}

var cities = []string{
	"Manchester", "Bristol", "Leeds", "Birmingham",
	"Liverpool", "Edinburgh", "Brighton", "Oxford",
	"Glasgow", "Cardiff", "Newcastle", "Sheffield",
}

var firstNames = []string{
	"Oliver", "Amelia", "George", "Isla", "Harry", "Ava", "Jack", "Sophia",
	"Noah", "Grace", "Charlie", "Freya", "Thomas", "Emily", "Oscar", "Poppy",
	"James", "Lily", "William", "Evie", "Daniel", "Mia", "Samuel", "Ruby",
}

var lastNames = []string{
	"Smith", "Jones", "Taylor", "Brown", "Williams", "Wilson", "Johnson",
	"Davies", "Robinson", "Wright", "Thompson", "Evans", "Walker", "White",
	"Roberts", "Green", "Hall", "Wood", "Jackson", "Clarke", "Patel", "Khan",
}

var breweries = []string{
	"Northgate", "Old Mill", "Blackfriars", "Stonebridge", "Foundry",
	"Kestrel", "Longship", "Whitecliff",
}

var wineEstates = []string{
	"Alderwood", "Casa Verde", "Montrevel", "Silverleaf", "Valle Rojo",
	"Beaumont", "Kestwick",
}

var productNames = map[model.Category][]string{
	model.CategoryBeer: {
		"Lager", "IPA", "Pale Ale", "Stout", "Pilsner", "Porter", "Amber Ale",
	},
	model.CategoryWine: {
		"Chardonnay", "Merlot", "Pinot Noir", "Sauvignon Blanc", "Rosé",
		"Malbec", "Riesling",
	},
	model.CategorySpirits: {
		"Vodka", "Gin", "Rum", "Whisky", "Tequila", "Bourbon", "Brandy",
	},
	model.CategoryCocktails: {
		"Mojito", "Margarita", "Old Fashioned", "Martini", "Cosmopolitan",
		"Manhattan", "Negroni", "Espresso Martini",
	},
	model.CategorySoftDrinks: {
		"Cola", "Lemonade", "Orange Juice", "Tonic Water", "Ginger Ale",
		"Sparkling Water", "Apple Juice",
	},
	model.CategoryAppetizers: {
		"Chicken Wings", "Nachos", "Garlic Bread", "Calamari",
		"Mozzarella Sticks", "Hummus & Pitta", "Soup of the Day",
	},
	model.CategoryMainCourse: {
		"Burger", "Steak", "Fish & Chips", "Pasta", "Pizza", "Salad Bowl",
		"Roast Chicken", "Pie of the Day",
	},
	model.CategoryDesserts: {
		"Chocolate Cake", "Ice Cream", "Cheesecake", "Brownie", "Apple Pie",
		"Sticky Toffee Pudding",
	},
	model.CategorySides: {
		"Fries", "Coleslaw", "Onion Rings", "Side Salad", "Vegetables",
		"Mashed Potato",
	},
	model.CategoryHotBeverages: {
		"Espresso", "Cappuccino", "Latte", "Tea", "Hot Chocolate",
		"Flat White",
	},
}
