package domain

// LikeState is a post's like counter together with whether the viewer is in its like-set
type LikeState struct {
	Liked bool
	Count int
}

// LikeOutcome is the result of applying a like or unlike
type LikeOutcome struct {
	Changed bool
	Liked   bool
	Count   int
}

// ApplyLike moves the viewer into (want=true) or out of the like-set. It is a
// no-op when membership already matches; otherwise the counter moves by
// exactly one and never drops below zero.
func ApplyLike(state LikeState, want bool) LikeOutcome {
	if state.Count < 0 {
		state.Count = 0
	}
	if state.Liked == want {
		return LikeOutcome{Liked: state.Liked, Count: state.Count}
	}

	count := state.Count
	if want {
		count++
	} else if count > 0 {
		count--
	}
	return LikeOutcome{Changed: true, Liked: want, Count: count}
}
