//go:build !linux

package networking

import "errors"

// Inspector is unavailable outside Linux.
type Inspector struct{}

func NewInspector() *Inspector {
	return &Inspector{}
}

func (i *Inspector) Inspect(tables []int) (*Status, error) {
	return nil, errors.New("routing inspection requires Linux")
}
