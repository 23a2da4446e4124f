package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/betstack/betstack/internal/model"
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

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case User:
		o.printUser(v)
	case AuthResult:
		o.printAuthResult(v)
	case SessionInfo:
		o.printSessionInfo(v)
	case TopupResult:
		o.printTopupResult(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Wallet response type (matches API)
type Wallet struct {
	Balance int64 `json:"balance"`
}

// User response type (matches API)
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Wallet    Wallet    `json:"wallet"`
	CreatedAt time.Time `json:"created_at"`
}

func (u User) toModel() model.User {
	return model.User{
		ID:        model.UserID(u.ID),
		Username:  u.Username,
		Email:     u.Email,
		Wallet:    model.Wallet{Balance: u.Wallet.Balance},
		CreatedAt: u.CreatedAt,
	}
}

// AuthResult combines user and token
type AuthResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      User      `json:"user"`
}

// SessionInfo is the session bootstrap response
type SessionInfo struct {
	Authenticated bool    `json:"authenticated"`
	Token         *string `json:"token"`
	User          *User   `json:"user"`
}

// TopupResult is the top-up verification response
type TopupResult struct {
	Reference string `json:"reference"`
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printUser(u User) {
	fmt.Printf("User: %s (%s)\n", u.Username, u.ID)
	fmt.Printf("Email: %s\n", u.Email)
	fmt.Printf("Balance: %d\n", u.Wallet.Balance)
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printUser(a.User)
	fmt.Printf("Token: %s\n", a.Token)
	fmt.Printf("Expires: %s\n", a.ExpiresAt.Format(time.RFC3339))
}

func (o *Output) printSessionInfo(s SessionInfo) {
	if !s.Authenticated || s.User == nil {
		fmt.Println("Not logged in")
		return
	}
	o.printUser(*s.User)
}

func (o *Output) printTopupResult(t TopupResult) {
	fmt.Printf("Reference: %s\n", t.Reference)
	fmt.Printf("Status: %s\n", t.Status)
	if t.Message != "" {
		fmt.Printf("Message: %s\n", t.Message)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
