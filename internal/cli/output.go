package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case RegisterResult:
		o.printRegisterResult(v)
	case CommandResult:
		o.printCommandResult(v)
	case MessageResult:
		o.printMessageResult(v)
	case []MessageResult:
		for _, m := range v {
			o.printMessageResult(m)
		}
	case Match:
		o.printMatch(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// RegisterResult response type
type RegisterResult struct {
	PlayerID int `json:"player_id"`
}

// CommandResult response type
type CommandResult struct {
	Response string `json:"response"`
}

// MessageResult response type
type MessageResult struct {
	Message string `json:"message"`
}

// Player response type (matches API)
type Player struct {
	ID              int    `json:"id"`
	Mode            string `json:"mode"`
	Difficulty      string `json:"difficulty"`
	PendingMessages int    `json:"pending_messages"`
}

// Participant response type
type Participant struct {
	Kind     string `json:"kind"`
	PlayerID *int   `json:"player_id,omitempty"`
}

func (p *Participant) String() string {
	if p == nil {
		return "-"
	}
	if p.PlayerID == nil {
		return "computer"
	}
	return fmt.Sprintf("player %d", *p.PlayerID)
}

// Move response type
type Move struct {
	Participant Participant `json:"participant"`
	Amount      int         `json:"amount"`
}

// Match response type
type Match struct {
	ID             int          `json:"id"`
	State          string       `json:"state"`
	Difficulty     string       `json:"difficulty"`
	PlayerOne      *Participant `json:"player_one"`
	PlayerTwo      *Participant `json:"player_two"`
	TotalMarbles   int          `json:"total_marbles"`
	CurrentMarbles int          `json:"current_marbles"`
	NextTurn       *Participant `json:"next_turn,omitempty"`
	Moves          []Move       `json:"moves"`
	Winner         *Participant `json:"winner,omitempty"`
	Loser          *Participant `json:"loser,omitempty"`
	Forfeited      bool         `json:"forfeited,omitempty"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	fmt.Printf("Player: %d\n", p.ID)
	fmt.Printf("Mode: %s\n", p.Mode)
	fmt.Printf("Difficulty: %s\n", p.Difficulty)
	fmt.Printf("Pending messages: %d\n", p.PendingMessages)
}

func (o *Output) printRegisterResult(r RegisterResult) {
	fmt.Printf("Registered as player %d\n", r.PlayerID)
}

func (o *Output) printCommandResult(c CommandResult) {
	if c.Response != "" {
		fmt.Println(c.Response)
	}
}

func (o *Output) printMessageResult(m MessageResult) {
	if m.Message == "" {
		fmt.Println("(no messages)")
		return
	}
	fmt.Println(m.Message)
}

func (o *Output) printMatch(m Match) {
	fmt.Printf("Match: %d\n", m.ID)
	fmt.Printf("State: %s\n", m.State)
	fmt.Printf("Difficulty: %s\n", m.Difficulty)
	fmt.Printf("Players: %s vs %s\n", m.PlayerOne, m.PlayerTwo)
	fmt.Printf("Marbles: %d of %d left\n", m.CurrentMarbles, m.TotalMarbles)

	if m.NextTurn != nil {
		fmt.Printf("Next turn: %s\n", m.NextTurn)
	}

	if len(m.Moves) > 0 {
		moves := make([]string, len(m.Moves))
		for i, mv := range m.Moves {
			moves[i] = fmt.Sprintf("%s took %d", &mv.Participant, mv.Amount)
		}
		fmt.Printf("Moves: %s\n", strings.Join(moves, ", "))
	}

	if m.Winner != nil {
		fmt.Printf("Winner: %s\n", m.Winner)
	}
	if m.Loser != nil {
		suffix := ""
		if m.Forfeited {
			suffix = " (forfeited)"
		}
		fmt.Printf("Loser: %s%s\n", m.Loser, suffix)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
