package catan

import "math/rand"

// draw advances state's seed deterministically and hands the caller a
// *rand.Rand built from the pre-advance seed, so every random decision in
// the reducer (dice, deck shuffle, steal target) is reproducible from the
// same (initial state, action sequence) pair. Callers always take the
// returned seed, never keep the *rand.Rand around.
func draw(seed int64) (*rand.Rand, int64) {
	r := rand.New(rand.NewSource(seed))
	next := r.Int63()
	return rand.New(rand.NewSource(seed)), next
}

func rollDice(seed int64) (DiceRoll, int64) {
	r, next := draw(seed)
	d1 := r.Intn(6) + 1
	d2 := r.Intn(6) + 1
	return DiceRoll{Die1: d1, Die2: d2, Total: d1 + d2}, next
}

func shuffleDevDeck(seed int64) ([]DevCardType, int64) {
	deck := make([]DevCardType, 0, 25)
	add := func(t DevCardType, n int) {
		for i := 0; i < n; i++ {
			deck = append(deck, t)
		}
	}
	add(Knight, 14)
	add(VictoryPoint, 5)
	add(RoadBuilding, 2)
	add(YearOfPlenty, 2)
	add(Monopoly, 2)

	r, next := draw(seed)
	r.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
	return deck, next
}

// pickStolenResource draws one resource uniformly at random from the
// target's multiset of cards (one of N cards, not one of 5 types).
func pickStolenResource(target Bundle, seed int64) (Resource, int64, bool) {
	total := target.Total()
	if total == 0 {
		return 0, seed, false
	}
	r, next := draw(seed)
	idx := r.Intn(total)
	for _, res := range allResources {
		n := target[res]
		if idx < n {
			return res, next, true
		}
		idx -= n
	}
	return 0, next, false
}
