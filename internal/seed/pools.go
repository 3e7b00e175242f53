package seed

// Walker data pools.
var (
	walkerNames = []string{
		"Alex Chen", "Mia Johnson", "Ryan Park", "Emily Wong", "Daniel Kim",
		"Sophia Lee", "Jason Wu", "Olivia Brown", "Kevin Zhang", "Hannah Miller",
	}

	walkerBios = []string{
		"Experienced dog walker who loves long walks",
		"Great with puppies and senior dogs",
		"Patient, calm, and safety-focused",
		"Energetic walker for high-energy dogs",
		"Reliable and punctual, safety first",
	}

	walkerAreas = []string{
		"Cambridge, MA", "Somerville, MA", "Brookline, MA", "Allston, Boston", "Brighton, Boston",
	}
)

// Request data pools.
var (
	dogNames = []string{
		"Max", "Bella", "Charlie", "Luna", "Cooper", "Rocky", "Daisy", "Bailey",
		"Lucy", "Duke", "Sadie", "Jack", "Molly", "Buddy", "Maggie", "Bear",
		"Sophie", "Zeus", "Chloe", "Tucker", "Lola", "Oliver", "Zoe", "Leo",
		"Milo", "Nala", "Thor", "Stella", "Finn", "Penny", "Oscar", "Ruby",
		"Murphy", "Rosie", "Gus", "Willow", "Teddy", "Pepper", "Archie", "Coco",
		"Winston", "Gracie", "Bentley", "Ellie", "Toby", "Millie", "Sam", "Ivy",
		"Harley", "Lily", "Apollo", "Maya", "Rex", "Hazel", "Louie", "Winnie",
	}

	breeds = []string{
		"Golden Retriever", "Labrador Retriever", "German Shepherd", "Beagle",
		"Bulldog", "Poodle", "Siberian Husky", "Pembroke Welsh Corgi", "Dachshund",
		"Boxer", "Shiba Inu", "Boston Terrier", "Pomeranian", "Yorkshire Terrier",
		"French Bulldog", "Chihuahua", "Border Collie", "Australian Shepherd",
		"Cocker Spaniel", "Maltese", "Cavalier King Charles Spaniel", "Shih Tzu",
		"Miniature Schnauzer", "Doberman Pinscher", "Great Dane",
		"Bernese Mountain Dog", "Rottweiler", "English Springer Spaniel",
		"Havanese", "Bichon Frise", "Akita", "Rhodesian Ridgeback", "Newfoundland",
		"West Highland White Terrier", "Shetland Sheepdog", "Basset Hound", "Pug",
		"Weimaraner", "Dalmatian", "Jack Russell Terrier", "Vizsla", "Samoyed",
		"Bull Terrier", "Mixed Breed",
	}

	// Temperaments assigned to seeded dogs. "aggressive" is accepted from
	// clients but never generated.
	seedTemperaments = []string{"friendly", "shy", "energetic", "calm"}

	requestLocations = []string{
		"Back Bay, Boston", "Fenway, Boston", "Allston, Boston", "Brighton, Boston",
		"South End, Boston", "Beacon Hill, Boston", "North End, Boston", "South Boston",
		"West End, Boston", "Downtown Boston", "Chinatown, Boston", "Bay Village, Boston",
		"Leather District, Boston", "Brookline, MA", "Cambridge, MA", "Somerville, MA",
		"Jamaica Plain, Boston", "Dorchester, Boston", "Roxbury, Boston",
		"Roslindale, Boston", "West Roxbury, Boston", "Hyde Park, Boston",
		"Mattapan, Boston", "Newton, MA", "Watertown, MA", "Medford, MA", "Malden, MA",
		"Quincy, MA", "Waltham, MA", "Arlington, MA", "Belmont, MA",
	}

	ownerNames = []string{
		"Sarah Johnson", "Mike Chen", "Emily Davis", "James Wilson", "Lisa Brown",
		"David Lee", "Maria Garcia", "John Smith", "Anna Wang", "Tom Anderson",
		"Jennifer Martinez", "Chris Taylor", "Amanda Rodriguez", "Kevin Park",
		"Michelle Kim", "Brian O'Connor", "Samantha Green", "Daniel Nguyen",
		"Rachel Cohen", "Andrew Patel", "Jessica Liu", "Matthew White",
		"Laura Thompson", "Ryan Murphy", "Nicole Rossi", "Eric Zhang",
		"Ashley Santos", "Jason Lee", "Stephanie Adams", "Brandon Wu",
	}

	// Seven blanks weight roughly 70% of dogs to no special needs.
	specialNeeds = []string{
		"", "", "", "", "", "", "",
		"Pulls on leash, needs harness",
		"Reactive to other dogs, needs space",
		"Senior dog, walks slowly",
		"Puppy, still learning leash manners",
		"Needs medication during walk",
		"Allergies to certain treats",
		"Fear of loud noises",
		"Must stay on sidewalk, fears grass",
		"Needs to be carried up stairs",
	}

	socialNotes = []string{
		"Looking for walking buddies with friendly dogs!",
		"Would love to meet other Golden Retriever owners",
		"Seeking regular walking partners for weekend mornings",
		"My dog loves to socialize, happy to do group walks",
		"Looking to connect with other dog owners in the area",
		"Open to carpooling to nearby dog parks",
		"Interested in puppy playdate meetups",
		"Would enjoy walking with other large breed owners",
		"Hope to find friends for both me and my pup!",
		"New to the area, would love to meet fellow dog lovers",
	}

	walkDurations = []int{15, 30, 45, 60}
)

// budgetRange is the price band, in dollars, for a walk of a given length.
type budgetRange struct{ min, max int }

var budgetByDuration = map[int]budgetRange{
	15: {12, 22},
	30: {18, 32},
	45: {25, 42},
	60: {32, 55},
}

func budgetFor(duration int) budgetRange {
	if r, ok := budgetByDuration[duration]; ok {
		return r
	}
	return budgetRange{15, 50}
}
