package boggle

// dictionary is a bundled curated word set, substitutable for a larger list
// so long as lookup stays O(1) on the hot path and scoring semantics hold.
var dictionary = buildDictionary([]string{
	"ACE", "ACES", "ACHE", "ACHES", "ACT", "ACTS", "AGE", "AGES", "AIR", "AIM",
	"ALE", "ALES", "ALL", "AND", "ANT", "ANTS", "ARE", "ARM", "ARMS", "ART",
	"ARTS", "ASH", "ASK", "ATE", "BAT", "BATS", "BEAR", "BEAT", "BEATS",
	"BEAN", "BEANS", "BEE", "BEES", "BEG", "BEST", "BIG", "BIN", "BIT",
	"BITE", "BITES", "BOAT", "BOATS", "BONE", "BONES", "BOX", "BOXES",
	"CAN", "CANE", "CANES", "CAR", "CARE", "CARES", "CARS", "CASE", "CASES",
	"CAT", "CATS", "CHEAT", "CHEATS", "CITE", "CITES", "COT", "COTS",
	"DARE", "DARES", "DATE", "DATES", "DEAR", "DEN", "DENS", "DINE", "DINES",
	"DOG", "DOGS", "DOT", "DOTS", "EACH", "EAR", "EARN", "EARNS", "EARS",
	"EAST", "EAT", "EATS", "EAR", "EASE", "EASES", "EASY", "EAT", "EATEN",
	"EGG", "EGGS", "ERA", "ERAS", "EXAM", "EXAMPLE", "EXAMPLES", "FAR",
	"FARE", "FARES", "FAT", "GEAR", "GEARS", "GNAT", "GNATS", "HARE",
	"HARES", "HAS", "HASTE", "HAT", "HATE", "HATES", "HATS", "HEAR",
	"HEARS", "HEART", "HEARTS", "HEAT", "HEATS", "HEN", "HENS", "HER",
	"HERE", "HERS", "HERE", "HIS", "HIT", "HITS", "MAT", "MATE", "MATES",
	"MATS", "NEAR", "NEAT", "NEST", "NESTS", "NET", "NETS", "OAT", "OATS",
	"RACE", "RACES", "RANT", "RANTS", "RAT", "RATE", "RATES", "RATS",
	"REACH", "REACHES", "REAL", "REAR", "REARS", "REST", "RESTS", "SAT",
	"SAME", "SAE", "SEA", "SEAR", "SEARS", "SEAT", "SEATS", "SEE", "SEEN",
	"SET", "SETS", "SHE", "STAR", "STARE", "STARES", "STARS", "TAR",
	"TARE", "TARES", "TARS", "TART", "TARTS", "TEA", "TEACH", "TEACHER",
	"TEACHERS", "TEACHES", "TEAM", "TEAMS", "TEAR", "TEARS", "TEAS",
	"TEASE", "TEN", "TENS", "TENT", "TENTS", "TEST", "TESTS", "THE",
	"THEM", "THEN", "THERE", "THESE", "TREE", "TREES", "WAS",
})

func buildDictionary(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}
