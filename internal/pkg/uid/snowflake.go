package uid

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
)

// Snowflake generates Twitter-style 63-bit IDs.
type Snowflake struct {
	node *snowflake.Node
}

// NewSnowflake builds a generator for node, which must fit in 10 bits (0..1023).
func NewSnowflake(node int64) (*Snowflake, error) {
	n, err := snowflake.NewNode(node)
	if err != nil {
		return nil, fmt.Errorf("uid: snowflake node %d: %w", node, err)
	}
	return &Snowflake{node: n}, nil
}

// Generate returns the next ID.
func (s *Snowflake) Generate() int64 {
	return s.node.Generate().Int64()
}
