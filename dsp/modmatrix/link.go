package modmatrix

// Link is one active modulation: Source drives Parameter of Dest.
// Previous holds the destination value the link overrode.
type Link struct {
	Source    string
	Dest      string
	Parameter string
	Previous  Value
}

// Filter selects links by field. An empty field matches any value.
type Filter struct {
	Source    string
	Dest      string
	Parameter string
}

func (f Filter) match(l Link) bool {
	return (f.Source == "" || f.Source == l.Source) &&
		(f.Dest == "" || f.Dest == l.Dest) &&
		(f.Parameter == "" || f.Parameter == l.Parameter)
}
