package partition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupForSelectsTable(t *testing.T) {
	l4, err := LookupFor(Capacity4M)
	require.NoError(t, err)
	l8, err := LookupFor(Capacity8M)
	require.NoError(t, err)

	a4, ok := l4(Application)
	require.True(t, ok)
	a8, ok := l8(Application)
	require.True(t, ok)

	assert.Equal(t, uint32(0x040000), a4.Length)
	assert.Equal(t, uint32(0x060000), a8.Length)

	_, err = LookupFor(Capacity(2))
	assert.ErrorIs(t, err, ErrUnknownCapacity)
}

func TestTablesFitCapacityAndDoNotOverlap(t *testing.T) {
	for _, c := range []Capacity{Capacity4M, Capacity8M} {
		lookup, err := LookupFor(c)
		require.NoError(t, err)

		var prevEnd uint64
		for id := ID(0); id < Max; id++ {
			d, ok := lookup(id)
			require.True(t, ok, "%s %s", c, id)
			if d.Length == 0 {
				continue
			}
			assert.LessOrEqual(t, d.End(), uint64(c.Size()), "%s %s", c, id)
			assert.GreaterOrEqual(t, uint64(d.Start), prevEnd, "%s %s overlaps", c, id)
			assert.Zero(t, d.Start%0x1000, "%s %s not sector aligned", c, id)
			prevEnd = d.End()
		}
	}
}

func TestLookupOutOfRange(t *testing.T) {
	lookup, err := LookupFor(Capacity4M)
	require.NoError(t, err)

	_, ok := lookup(Max)
	assert.False(t, ok)
}

func TestRedirectKV(t *testing.T) {
	kv := KVConfig{Enabled: true, Primary: Parameter2, Secondary: Parameter4, PrimarySize: 0x1000}
	r := NewResolver(partitions4M.Lookup, kv)

	id, off := r.Redirect(Parameter2, 0x1000)
	assert.Equal(t, Parameter4, id)
	assert.Equal(t, uint32(0), off)

	id, off = r.Redirect(Parameter2, 0x1800)
	assert.Equal(t, Parameter4, id)
	assert.Equal(t, uint32(0x800), off)

	id, off = r.Redirect(Parameter2, 0x0FFF)
	assert.Equal(t, Parameter2, id)
	assert.Equal(t, uint32(0x0FFF), off)

	id, off = r.Redirect(Parameter1, 0x1000)
	assert.Equal(t, Parameter1, id)
	assert.Equal(t, uint32(0x1000), off)
}

func TestRedirectDisabled(t *testing.T) {
	kv := DefaultKV
	r := NewResolver(partitions4M.Lookup, kv)

	id, off := r.Redirect(Parameter2, kv.PrimarySize)
	assert.Equal(t, Parameter2, id)
	assert.Equal(t, kv.PrimarySize, off)
}

func TestResolve(t *testing.T) {
	kv := DefaultKV
	kv.Enabled = true
	r := NewResolver(partitions8M.Lookup, kv)

	d, id, off, ok := r.Resolve(Parameter2, kv.PrimarySize+4)
	require.True(t, ok)
	assert.Equal(t, Parameter4, id)
	assert.Equal(t, uint32(4), off)
	assert.Equal(t, partitions8M[Parameter4], d)

	var nilResolver *Resolver
	_, ok = nilResolver.Info(Application)
	assert.False(t, ok)
}

func TestParse(t *testing.T) {
	id, err := ParseID("SPIFFS")
	require.NoError(t, err)
	assert.Equal(t, SPIFFS, id)

	id, err = ParseID("1")
	require.NoError(t, err)
	assert.Equal(t, Application, id)

	_, err = ParseID("nope")
	assert.Error(t, err)
	_, err = ParseID("99")
	assert.Error(t, err)

	c, err := ParseCapacity("8m")
	require.NoError(t, err)
	assert.Equal(t, Capacity8M, c)
	assert.Equal(t, "8M", c.String())
	assert.Equal(t, uint32(1<<20), c.Size())

	_, err = ParseCapacity("16M")
	assert.ErrorIs(t, err, ErrUnknownCapacity)
}
