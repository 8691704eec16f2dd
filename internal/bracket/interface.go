package bracket

// Registry defines read access to bracket configuration. Brackets are
// seeded out of band; the queue core only ever reads them. Get returns
// (nil, nil) when the bracket does not exist.
type Registry interface {
	Get(bracketID string) (*Bracket, error)
	List() ([]Bracket, error)
	// Upsert exists for the seeder and tests, not for the core.
	Upsert(b *Bracket) error
}
