package tournament

import (
	"encoding/json"
	"fmt"
	"net"
	"strconv"
)

// Address identifies a player by the host it connected from and the port it listens on.
type Address struct {
	Host string
	Port int
}

func NewAddress(host string, port int) Address {
	return Address{Host: host, Port: port}
}

// ParseAddress parses a "host:port" string.
func ParseAddress(s string) (Address, error) {
	host, portStr, err := net.SplitHostPort(s)
	if err != nil {
		return Address{}, fmt.Errorf("parsing address %q: %w", s, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return Address{}, fmt.Errorf("parsing port of %q: %w", s, err)
	}
	return Address{Host: host, Port: port}, nil
}

func (a Address) String() string {
	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// MarshalJSON encodes the address as a ["host", port] pair.
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{a.Host, a.Port})
}

func (a *Address) UnmarshalJSON(b []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(b, &pair); err != nil {
		return fmt.Errorf("address must be a [host, port] pair: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("address must have 2 elements, got %d", len(pair))
	}
	if err := json.Unmarshal(pair[0], &a.Host); err != nil {
		return fmt.Errorf("address host: %w", err)
	}
	if err := json.Unmarshal(pair[1], &a.Port); err != nil {
		return fmt.Errorf("address port: %w", err)
	}
	return nil
}
