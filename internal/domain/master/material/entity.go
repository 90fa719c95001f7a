package material

import "time"

type Material struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
