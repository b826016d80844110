package parstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestParameter_Text(t *testing.T) {
	testCases := []struct {
		p    Parameter
		want string
	}{
		{Double("a", 5.4), "5.4"},
		{Double("b", 1000), "1000"},
		{Double("c", 1e-5), "1e-05"},
		{Int("nbGen", 3), "3"},
		{Bool("open", true), "true"},
		{Bool("open", false), "false"},
		{String("s", "x"), "x"},
	}
	for _, tc := range testCases {
		t.Run(tc.p.Name+"="+tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.p.Text())
		})
	}
}

func TestParameter_Float(t *testing.T) {
	f, err := Int("n", 7).Float()
	require.NoError(t, err)
	assert.Equal(t, 7.0, f)

	f, err = String("n", "2.5").Float()
	require.NoError(t, err)
	assert.Equal(t, 2.5, f)

	_, err = Bool("b", true).Float()
	require.ErrorIs(t, err, ErrWrongType)
}

func TestFromCty(t *testing.T) {
	p, err := FromCty("x", cty.NumberIntVal(3))
	require.NoError(t, err)
	assert.Equal(t, TypeDouble, p.Type)

	p, err = FromCty("y", cty.True)
	require.NoError(t, err)
	assert.Equal(t, TypeBool, p.Type)

	_, err = FromCty("z", cty.ListValEmpty(cty.String))
	require.Error(t, err)

	_, err = FromCty("n", cty.NullVal(cty.Number))
	require.Error(t, err)
}

func TestSet_Get(t *testing.T) {
	s := &Set{ID: "GEN", Parameters: []Parameter{Double("generator_H", 5.4)}}
	p, ok := s.Get("generator_H")
	require.True(t, ok)
	assert.Equal(t, "5.4", p.Text())
	_, ok = s.Get("generator_SNom")
	assert.False(t, ok)
}
