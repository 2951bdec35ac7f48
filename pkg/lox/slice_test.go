package lox_test

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"money_saver/pkg/lox"
)

func TestMapErr(t *testing.T) {
	rq := require.New(t)

	prices, err := lox.MapErr([]string{"12990", "799"}, strconv.Atoi)
	rq.NoError(err)
	rq.Equal([]int{12990, 799}, prices)

	prices, err = lox.MapErr([]string{"12990", "NT$799", "x"}, strconv.Atoi)
	rq.Nil(prices)

	var indexErr *lox.IndexError

	rq.True(errors.As(err, &indexErr))
	rq.Equal(1, indexErr.Index)
	rq.ErrorIs(err, strconv.ErrSyntax)
}

func TestMap(t *testing.T) {
	rq := require.New(t)

	rq.Equal([]int{2, 4}, lox.Map([]int{1, 2}, func(i int) int { return i * 2 }))
	rq.Empty(lox.Map([]int(nil), strconv.Itoa))
}
