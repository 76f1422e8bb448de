package entity

// ChatSession is the durable record of one conversation. It is persisted as an
// element of the owning user's session file and round-trips through JSON with
// exactly these field names.
type ChatSession struct {
	Id            string        `json:"id"`
	Name          string        `json:"name"`
	CreatedAt     Time          `json:"created_at"`
	LastMessageAt Time          `json:"last_message_at"`
	MessageCount  int           `json:"message_count"`
	Messages      []ChatMessage `json:"messages"`
}

// SessionNameMaxLen caps display titles, both LLM-generated and user-chosen.
const SessionNameMaxLen = 50

// TruncateName enforces the display title limit.
func TruncateName(name string) string {
	runes := []rune(name)
	if len(runes) > SessionNameMaxLen {
		return string(runes[:SessionNameMaxLen])
	}
	return name
}
