package irbis

import (
	"fmt"
	"strconv"
	"strings"

	ilserrors "github.com/amironov73/irbis-go/internal/errors"
)

// Config holds everything needed to dial a server and register a
// session: host/port/credentials/database plus the workstation role
// letter.
type Config struct {
	Host        string
	Port        int
	Username    string
	Password    string
	Database    string
	Workstation byte
}

// Workstation role letters the server recognizes.
const (
	WorkstationAdministrator = 'A'
	WorkstationCataloger     = 'C'
	WorkstationAcquisitions  = 'M'
	WorkstationReader        = 'R'
	WorkstationCirculation   = 'B'
	WorkstationProvision     = 'K'
)

// DefaultWorkstation is the Cataloger role, used when a connection
// string omits "arm"/"workstation".
const DefaultWorkstation = WorkstationCataloger

// DefaultPort is the standard IRBIS64 server port.
const DefaultPort = 6666

// ParseConnectionString parses a semicolon-separated "key=value;" string
// string. Recognized keys (case-insensitive, with synonyms):
// host/server/address, port, user/username/name/login,
// pwd/password, db/database/catalog, arm/workstation. An unrecognized
// key is a fatal FormatError.
func ParseConnectionString(s string) (Config, error) {
	cfg := Config{Port: DefaultPort, Workstation: DefaultWorkstation}

	for _, chunk := range strings.Split(s, ";") {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}

		idx := strings.IndexByte(chunk, '=')
		if idx < 0 {
			return Config{}, &ilserrors.FormatError{
				Field:   "connection string",
				Value:   chunk,
				Message: "expected key=value",
			}
		}

		key := strings.ToLower(strings.TrimSpace(chunk[:idx]))
		value := strings.TrimSpace(chunk[idx+1:])

		switch key {
		case "host", "server", "address":
			cfg.Host = value
		case "port":
			port, err := strconv.Atoi(value)
			if err != nil || port < 0 || port > 65535 {
				return Config{}, &ilserrors.FormatError{
					Field: "connection string port", Value: value, Message: "not an unsigned 16-bit integer",
				}
			}
			cfg.Port = port
		case "user", "username", "name", "login":
			cfg.Username = value
		case "pwd", "password":
			cfg.Password = value
		case "db", "database", "catalog":
			cfg.Database = value
		case "arm", "workstation":
			if len(value) == 0 {
				return Config{}, &ilserrors.FormatError{
					Field: "connection string workstation", Value: value, Message: "empty workstation code",
				}
			}
			cfg.Workstation = value[0]
		default:
			return Config{}, &ilserrors.FormatError{
				Field: "connection string key", Value: key, Message: "unrecognized key",
			}
		}
	}

	return cfg, nil
}

// String renders cfg back into its canonical connection-string form, the
// inverse of ParseConnectionString.
func (c Config) String() string {
	return fmt.Sprintf("host=%s;port=%d;user=%s;pwd=%s;db=%s;arm=%s;",
		c.Host, c.Port, c.Username, c.Password, c.Database, string(c.Workstation))
}

// Address renders the "host:port" dial target for this config.
func (c Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
