package scenario

import "strings"

// Kind identifies a scenario. The five named scenarios are fixed; any other
// parameter set is KindCustom and is identified by its name.
type Kind int

const (
	KindCustom Kind = iota
	KindBaseline
	KindRenewable
	KindMixed
	KindSleep
	KindSleepRenewable
)

// BuiltinKinds lists the named scenarios in reporting order.
var BuiltinKinds = []Kind{
	KindBaseline,
	KindRenewable,
	KindMixed,
	KindSleep,
	KindSleepRenewable,
}

func (k Kind) String() string {
	switch k {
	case KindBaseline:
		return "baseline"
	case KindRenewable:
		return "renewable"
	case KindMixed:
		return "mixed"
	case KindSleep:
		return "sleep"
	case KindSleepRenewable:
		return "sleep+renewable"
	default:
		return "custom"
	}
}

// ParseKind returns the built-in Kind with the given name. Custom scenarios
// are not parseable by name; the boolean is false for them.
func ParseKind(name string) (Kind, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, k := range BuiltinKinds {
		if k.String() == name {
			return k, true
		}
	}
	return KindCustom, false
}

// MarshalText encodes the kind by name so tables serialize readably.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name. Unrecognized names decode to KindCustom.
func (k *Kind) UnmarshalText(text []byte) error {
	*k, _ = ParseKind(string(text))
	return nil
}
