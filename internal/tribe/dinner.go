package tribe

// Dinner is the outcome of serving one day's pot.
type Dinner struct {
	Pot      int   // meat in the pot when the hunters got back
	CookAte  bool  // the cook always takes the first piece
	Fed      []int // slots fed, ascending
	Hungry   []int // slots left hungry, ascending
	Leftover int
}

// Serve feeds the cook first and then every living slot in ascending index
// order while meat remains, marking AteToday on each living slot.
func Serve(pot int, slots []Slot) Dinner {
	d := Dinner{Pot: pot, Fed: []int{}, Hungry: []int{}}
	if pot > 0 {
		pot--
		d.CookAte = true
	}
	for i := range slots {
		if !slots[i].Alive {
			continue
		}
		if pot > 0 {
			slots[i].AteToday = true
			pot--
			d.Fed = append(d.Fed, i)
		} else {
			slots[i].AteToday = false
			d.Hungry = append(d.Hungry, i)
		}
	}
	d.Leftover = pot
	return d
}

// Cull picks one victim per hungry slot: the lowest-index living slot that
// came back empty-handed today. It stops as soon as nobody is eligible, so
// the remaining hungry are spared. Victims are marked dead in slots.
//
// Victims are taken lowest index first, not drawn at random.
func Cull(slots []Slot, hungry []int) []int {
	victims := []int{}
	for range hungry {
		v := firstEmptyHanded(slots)
		if v < 0 {
			break
		}
		slots[v].Alive = false
		victims = append(victims, v)
	}
	return victims
}

func firstEmptyHanded(slots []Slot) int {
	for i := range slots {
		if slots[i].Alive && !slots[i].SucceededToday {
			return i
		}
	}
	return -1
}

// PrepareNextHunt dooms tomorrow's hunt for every surviving slot that went
// to bed hungry and clears the doom for those that ate.
func PrepareNextHunt(slots []Slot) {
	for i := range slots {
		if !slots[i].Alive {
			continue
		}
		slots[i].ForcedFailure = !slots[i].AteToday
	}
}
