package dao

// DefiningFlag tells whether a measurement was used in a location or
// magnitude solution.
type DefiningFlag string

const (
	Defining        DefiningFlag = "d"
	DefiningUpper   DefiningFlag = "D"
	NonDefining     DefiningFlag = "n"
	NonDefiningUp   DefiningFlag = "N"
	Excluded        DefiningFlag = "x"
	ExcludedUpper   DefiningFlag = "X"
	DefiningUnknown DefiningFlag = "-"
)

// IsValid is true for the flags CSS allows.
func (d DefiningFlag) IsValid() bool {
	switch d {
	case Defining, DefiningUpper, NonDefining, NonDefiningUp,
		Excluded, ExcludedUpper, DefiningUnknown:
		return true
	}
	return false
}

// IsDefining is true for "d" and "D".
func (d DefiningFlag) IsDefining() bool {
	return d == Defining || d == DefiningUpper
}

// ParseDefiningFlag converts a CSS column value to DefiningFlag. It
// returns false for empty or unknown values.
func ParseDefiningFlag(s string) (DefiningFlag, bool) {
	res := DefiningFlag(s)
	if !res.IsValid() {
		return "", false
	}
	return res, true
}
