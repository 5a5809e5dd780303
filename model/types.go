package model

// Side is the direction of a contract or position.
type Side int

const (
	Long Side = iota
	Short
)

func (s Side) String() string {
	if s == Short {
		return "short"
	}
	return "long"
}

// Multiplier is +1 for long and -1 for short, applied to prices and
// position-level Greeks.
func (s Side) Multiplier() float64 {
	if s == Short {
		return -1
	}
	return 1
}

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == Short {
		return Long
	}
	return Short
}

// OptionStyle distinguishes exercise styles. American contracts are priced
// identically to European ones here; early exercise is out of scope.
type OptionStyle int

const (
	European OptionStyle = iota
	American
)

func (s OptionStyle) String() string {
	if s == American {
		return "american"
	}
	return "european"
}

// OptionType is the payoff type.
type OptionType int

const (
	Call OptionType = iota
	Put
)

func (t OptionType) String() string {
	if t == Put {
		return "put"
	}
	return "call"
}
