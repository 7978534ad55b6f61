package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
)

func TestNew_PingMiniredis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatal(err)
	}
	defer mr.Close()

	cli := New(Config{Host: mr.Host(), Port: mr.Port()})
	defer cli.Close()

	assert.NoError(t, cli.Ping(context.Background()).Err())
}
