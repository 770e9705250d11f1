package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageable_Params(t *testing.T) {
	assert.Equal(t, map[string]string{"page": "0"}, Pageable{}.Params())
	assert.Equal(t, map[string]string{"page": "0"}, Pageable{Page: -3}.Params())
	assert.Equal(t,
		map[string]string{"page": "2", "size": "50", "sort": "firstName,asc"},
		Pageable{Page: 2, Size: 50, Sort: "firstName,asc"}.Params())
}

func TestPage_Last(t *testing.T) {
	assert.True(t, (&Page[int]{Number: 0, TotalPages: 1}).Last())
	assert.True(t, (&Page[int]{Number: 0, TotalPages: 0}).Last())
	assert.False(t, (&Page[int]{Number: 0, TotalPages: 3}).Last())
	assert.True(t, (&Page[int]{Number: 2, TotalPages: 3}).Last())
}
