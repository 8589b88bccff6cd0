package domain

// Update is one normalized inbound chat event: a command, a plain text
// message, or a callback-button press. At most one of Command, Text, or
// CallbackID is non-empty.
type Update struct {
	ChatID    int64
	UserID    int64
	FirstName string

	// Command is the command name without the leading slash; Args is the
	// rest of the line.
	Command string
	Args    string

	Text string

	CallbackData      string
	CallbackID        string
	CallbackMessageID int
}

// IsCallback reports whether the update is a callback-button press. It keys
// on the query ID, not the data payload: a press with empty data still needs
// its acknowledgement.
func (u Update) IsCallback() bool { return u.CallbackID != "" }
