package user

// ID is the opaque identifier the messaging platform assigns to a user.
type ID string

func (id ID) String() string {
	return string(id)
}
