package client

import "time"

type Client struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
