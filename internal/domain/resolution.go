package domain

import "fmt"

// ResolutionKind discriminates the outcome of a city lookup.
type ResolutionKind int

const (
	// Resolved means exactly one city matched.
	Resolved ResolutionKind = iota
	// Ambiguous means several cities matched and no region was given.
	Ambiguous
	// Unresolved means no city matched.
	Unresolved
)

func (k ResolutionKind) String() string {
	switch k {
	case Resolved:
		return "resolved"
	case Ambiguous:
		return "ambiguous"
	default:
		return "not_found"
	}
}

// CityResolution is the tagged result of resolving a free-text city name.
// City is set only for Resolved, Candidates only for Ambiguous.
type CityResolution struct {
	Kind       ResolutionKind
	Query      string
	Region     string
	City       City
	Candidates []City
}

// ResolvedCity builds a Resolved result.
func ResolvedCity(c City) CityResolution {
	return CityResolution{Kind: Resolved, Query: c.Name, City: c}
}

// AmbiguousCity builds an Ambiguous result over the given candidates.
func AmbiguousCity(name string, candidates []City) CityResolution {
	return CityResolution{Kind: Ambiguous, Query: name, Candidates: candidates}
}

// CityNotFound builds a NotFound result for name, optionally scoped to region.
func CityNotFound(name, region string) CityResolution {
	return CityResolution{Kind: Unresolved, Query: name, Region: region}
}

// Err converts a non-resolved outcome into the error taxonomy.
// It returns nil for Resolved.
func (r CityResolution) Err() error {
	switch r.Kind {
	case Resolved:
		return nil
	case Ambiguous:
		return fmt.Errorf("%w: %w: Multiple cities found with name '%s'. Please specify the region.",
			ErrValidation, ErrAmbiguousCity, r.Query)
	default:
		if r.Region != "" {
			return fmt.Errorf("%w: city '%s' in region '%s'", ErrNotFound, r.Query, r.Region)
		}
		return fmt.Errorf("%w: city '%s'", ErrNotFound, r.Query)
	}
}
