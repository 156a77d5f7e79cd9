package store_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/contactbook/internal/domain"
	"github.com/bft-labs/contactbook/internal/store"
	"github.com/bft-labs/contactbook/internal/validator"
)

func contact(name string, n int) domain.Contact {
	return domain.Contact{
		Name:  name,
		Phone: fmt.Sprintf("%010d", n),
		Email: fmt.Sprintf("user%d@mail.com", n),
	}
}

func names(s *store.Store) []string {
	var out []string
	for _, c := range s.All() {
		out = append(out, c.Name)
	}
	return out
}

func TestNew(t *testing.T) {
	s := store.New(0)
	assert.Equal(t, store.DefaultCapacity, s.Cap())
	assert.Equal(t, 0, s.Len())

	s = store.New(3)
	assert.Equal(t, 3, s.Cap())
	assert.Equal(t, 3, s.Remaining())
}

func TestAdd(t *testing.T) {
	t.Run("appends without sorting", func(t *testing.T) {
		s := store.New(10)
		require.NoError(t, s.Add(contact("zoe", 1)))
		require.NoError(t, s.Add(contact("amy", 2)))

		assert.Equal(t, []string{"zoe", "amy"}, names(s))
		assert.Equal(t, 2, s.Len())
	})

	t.Run("refuses past capacity", func(t *testing.T) {
		s := store.New(2)
		require.NoError(t, s.Add(contact("a", 1)))
		require.NoError(t, s.Add(contact("b", 2)))

		err := s.Add(contact("c", 3))
		assert.ErrorIs(t, err, domain.ErrCapacityExceeded)
		assert.Equal(t, 2, s.Len())
	})

	t.Run("then find by phone", func(t *testing.T) {
		s := store.New(store.DefaultCapacity)
		for i := 0; i < 20; i++ {
			c := contact("name", 5550000000+i)
			_, err := validator.Phone(c.Phone, s)
			require.NoError(t, err)
			require.NoError(t, s.Add(c))

			idx, err := s.FindByPhone(c.Phone)
			require.NoError(t, err)
			got, err := s.At(idx)
			require.NoError(t, err)
			assert.Equal(t, c, got)
		}
	})

	t.Run("duplicate phone rejected before reaching store", func(t *testing.T) {
		s := store.New(5)
		require.NoError(t, s.Add(domain.Contact{Name: "a", Phone: "1234567890", Email: "abcde@x.com"}))

		_, err := validator.Phone("1234567890", s)
		reason, _ := domain.ReasonOf(err)
		assert.Equal(t, domain.ReasonDuplicate, reason)

		_, err = validator.Email("abcde@x.com", s)
		reason, _ = domain.ReasonOf(err)
		assert.Equal(t, domain.ReasonDuplicate, reason)
	})
}

func TestReserve(t *testing.T) {
	s := store.New(3)
	require.NoError(t, s.Add(contact("a", 1)))

	assert.NoError(t, s.Reserve(2))
	assert.ErrorIs(t, s.Reserve(3), domain.ErrCapacityExceeded)
	assert.ErrorIs(t, s.Reserve(-1), domain.ErrCapacityExceeded)
	assert.Equal(t, 1, s.Len())
}

func TestSortByName(t *testing.T) {
	t.Run("case insensitive order", func(t *testing.T) {
		s := store.New(10)
		for i, n := range []string{"bob", "Amy", "zoe"} {
			require.NoError(t, s.Add(contact(n, i)))
		}
		s.SortByName()
		assert.Equal(t, []string{"Amy", "bob", "zoe"}, names(s))
	})

	t.Run("prefix sorts first", func(t *testing.T) {
		s := store.New(10)
		for i, n := range []string{"Bobby", "bob", "Bo", "bob a"} {
			require.NoError(t, s.Add(contact(n, i)))
		}
		s.SortByName()
		assert.Equal(t, []string{"Bo", "bob", "bob a", "Bobby"}, names(s))
	})

	t.Run("stable on case-only ties", func(t *testing.T) {
		s := store.New(10)
		in := []domain.Contact{contact("BOB", 1), contact("amy", 2), contact("bob", 3), contact("Bob", 4)}
		for _, c := range in {
			require.NoError(t, s.Add(c))
		}
		s.SortByName()

		got := s.All()
		assert.Equal(t, "amy", got[0].Name)
		assert.Equal(t, []string{in[0].Phone, in[2].Phone, in[3].Phone},
			[]string{got[1].Phone, got[2].Phone, got[3].Phone})
	})

	t.Run("idempotent", func(t *testing.T) {
		s := store.New(10)
		for i, n := range []string{"carl", "Amy", "bob", "amy", "Zed"} {
			require.NoError(t, s.Add(contact(n, i)))
		}
		s.SortByName()
		first := s.All()
		s.SortByName()
		assert.Equal(t, first, s.All())
	})
}

func TestCompareNames(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"amy", "AMY", 0},
		{"amy", "bob", -1},
		{"Bob", "amy", 1},
		{"bo", "bob", -1},
		{"bob ", "bob", 1},
		{"", "", 0},
	}
	for _, tt := range tests {
		got := store.CompareNames(tt.a, tt.b)
		switch {
		case tt.want == 0:
			assert.Zero(t, got, "%q vs %q", tt.a, tt.b)
		case tt.want < 0:
			assert.Negative(t, got, "%q vs %q", tt.a, tt.b)
		default:
			assert.Positive(t, got, "%q vs %q", tt.a, tt.b)
		}
	}
}

func TestFindByName(t *testing.T) {
	s := store.New(10)
	for i, n := range []string{"Amy", "bob", "BOB", "bobby"} {
		require.NoError(t, s.Add(contact(n, i)))
	}

	t.Run("single match", func(t *testing.T) {
		m, err := s.FindByName("amy")
		require.NoError(t, err)
		i, ok := m.Single()
		assert.True(t, ok)
		assert.Equal(t, 0, i)
	})

	t.Run("multiple matches in store order", func(t *testing.T) {
		m, err := s.FindByName("Bob")
		require.NoError(t, err)
		assert.Equal(t, store.Matches{1, 2}, m)
		_, ok := m.Single()
		assert.False(t, ok)

		i, err := m.Pick(2)
		require.NoError(t, err)
		assert.Equal(t, 2, i)

		_, err = m.Pick(3)
		assert.ErrorIs(t, err, domain.ErrInvalidSelection)
		_, err = m.Pick(0)
		assert.ErrorIs(t, err, domain.ErrInvalidSelection)
	})

	t.Run("no prefix matching", func(t *testing.T) {
		_, err := s.FindByName("bo")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("generic find refuses ambiguity", func(t *testing.T) {
		_, err := s.Find(domain.FieldName, "bob")
		assert.ErrorIs(t, err, domain.ErrInvalidSelection)

		i, err := s.Find(domain.FieldName, "BOBBY")
		require.NoError(t, err)
		assert.Equal(t, 3, i)
	})
}

func TestFindByPhoneAndEmail(t *testing.T) {
	s := store.New(10)
	require.NoError(t, s.Add(contact("a", 1)))
	require.NoError(t, s.Add(contact("b", 2)))

	i, err := s.FindByEmail("user2@mail.com")
	require.NoError(t, err)
	assert.Equal(t, 1, i)

	_, err = s.FindByEmail("USER2@mail.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	i, err = s.Find(domain.FieldPhone, "0000000001")
	require.NoError(t, err)
	assert.Equal(t, 0, i)

	_, err = s.FindByPhone("9999999999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateField(t *testing.T) {
	s := store.New(10)
	require.NoError(t, s.Add(contact("a", 1)))

	require.NoError(t, s.UpdateField(0, domain.FieldEmail, "fresh1@mail.com"))
	got, _ := s.At(0)
	assert.Equal(t, "fresh1@mail.com", got.Email)
	assert.Equal(t, "a", got.Name)

	assert.ErrorIs(t, s.UpdateField(1, domain.FieldName, "x"), domain.ErrIndexOutOfRange)
}

func TestExcept(t *testing.T) {
	s := store.New(10)
	require.NoError(t, s.Add(contact("a", 1)))
	require.NoError(t, s.Add(contact("b", 2)))

	own := "0000000001"
	_, err := validator.Phone(own, s)
	assert.ErrorIs(t, err, domain.ErrValidation, "full store sees own number as duplicate")

	_, err = validator.Phone(own, s.Except(0))
	assert.NoError(t, err)

	_, err = validator.Phone("0000000002", s.Except(0))
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.True(t, s.Except(1).HasEmail("user1@mail.com"))
	assert.False(t, s.Except(0).HasEmail("user1@mail.com"))
}

func TestRemoveAt(t *testing.T) {
	build := func() *store.Store {
		s := store.New(10)
		for i, n := range []string{"a", "b", "c", "d"} {
			require.NoError(t, s.Add(contact(n, i)))
		}
		return s
	}

	for i, want := range [][]string{{"b", "c", "d"}, {"a", "c", "d"}, {"a", "b", "d"}, {"a", "b", "c"}} {
		s := build()
		require.NoError(t, s.RemoveAt(i))
		assert.Equal(t, want, names(s))
		assert.Equal(t, 3, s.Len())
	}

	s := build()
	for _, bad := range []int{-1, 4, 100} {
		assert.ErrorIs(t, s.RemoveAt(bad), domain.ErrIndexOutOfRange)
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, names(s))
}

func TestAllReturnsCopy(t *testing.T) {
	s := store.New(2)
	require.NoError(t, s.Add(contact("a", 1)))
	all := s.All()
	all[0].Name = "mutated"
	got, _ := s.At(0)
	assert.Equal(t, "a", got.Name)
}
