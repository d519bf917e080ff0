package figcon

import "fmt"

// Location identifies one of the three definition tiers. Higher values win
// when merging.
type Location int

const (
	// LocationUnknown guards against zero values slipping through.
	LocationUnknown Location = iota
	// LocationDefault is the weakest tier, usually shipped with the program.
	LocationDefault
	// LocationSecondary overrides defaults (the user's home by default).
	LocationSecondary
	// LocationPrimary is the strongest tier (the working directory by default).
	LocationPrimary
)

func (l Location) String() string {
	switch l {
	case LocationDefault:
		return "default"
	case LocationSecondary:
		return "secondary"
	case LocationPrimary:
		return "primary"
	default:
		return "unknown"
	}
}

// ParseLocation converts a name into a Location. Unrecognised names map to
// LocationUnknown.
func ParseLocation(value string) Location {
	switch value {
	case "default", "DEFAULT":
		return LocationDefault
	case "secondary", "SECONDARY":
		return LocationSecondary
	case "primary", "PRIMARY":
		return LocationPrimary
	default:
		return LocationUnknown
	}
}

// MarshalText implements encoding.TextMarshaler.
func (l Location) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Location) UnmarshalText(text []byte) error {
	parsed := ParseLocation(string(text))
	if parsed == LocationUnknown {
		return fmt.Errorf("figcon: unknown location %q", string(text))
	}
	*l = parsed
	return nil
}

// Locations holds the path configured for each tier. A path is either a
// directory searched for the conventional file or a direct file path.
type Locations struct {
	Default   string `json:"default"`
	Secondary string `json:"secondary"`
	Primary   string `json:"primary"`
}

// Path returns the path configured for l.
func (ls Locations) Path(l Location) string {
	switch l {
	case LocationDefault:
		return ls.Default
	case LocationSecondary:
		return ls.Secondary
	case LocationPrimary:
		return ls.Primary
	default:
		return ""
	}
}

// Ordered returns the tiers in load order, weakest first.
func (ls Locations) Ordered() []Location {
	return []Location{LocationDefault, LocationSecondary, LocationPrimary}
}
