package services

import (
	"testing"
	"time"

	"github.com/Vladyslav2123/triply-sub001/models"

	"github.com/stretchr/testify/assert"
)

func priceListings(prices ...int64) []models.Listing {
	listings := make([]models.Listing, len(prices))
	for i, p := range prices {
		listings[i] = models.Listing{ID: uint(i + 1), PricePerNight: p}
	}
	return listings
}

func TestSortListings_PriceAsc(t *testing.T) {
	listings := priceListings(12000, 5000, 20000, 8000)
	SortListings(listings, SortPriceAsc)

	for i := 1; i < len(listings); i++ {
		assert.LessOrEqual(t, listings[i-1].PricePerNight, listings[i].PricePerNight)
	}
}

func TestSortListings_PriceDesc(t *testing.T) {
	listings := priceListings(12000, 5000, 20000, 8000)
	SortListings(listings, SortPriceDesc)

	for i := 1; i < len(listings); i++ {
		assert.GreaterOrEqual(t, listings[i-1].PricePerNight, listings[i].PricePerNight)
	}
}

// Equal keys keep their input order.
func TestSortListings_Stable(t *testing.T) {
	listings := []models.Listing{
		{ID: 1, PricePerNight: 9000},
		{ID: 2, PricePerNight: 9000},
		{ID: 3, PricePerNight: 5000},
	}
	SortListings(listings, SortPriceAsc)

	assert.Equal(t, uint(3), listings[0].ID)
	assert.Equal(t, uint(1), listings[1].ID)
	assert.Equal(t, uint(2), listings[2].ID)
}

func TestSortListings_RatingDesc(t *testing.T) {
	listings := []models.Listing{
		{ID: 1, Rating: 3.2},
		{ID: 2, Rating: 4.9},
		{ID: 3, Rating: 4.1},
	}
	SortListings(listings, SortRatingDesc)

	assert.Equal(t, uint(2), listings[0].ID)
	assert.Equal(t, uint(3), listings[1].ID)
	assert.Equal(t, uint(1), listings[2].ID)
}

func TestSortListings_TitleIgnoresCase(t *testing.T) {
	listings := []models.Listing{
		{ID: 1, Title: "zebra house"},
		{ID: 2, Title: "Alpine cabin"},
		{ID: 3, Title: "beach hut"},
	}
	SortListings(listings, SortTitleAsc)

	assert.Equal(t, "Alpine cabin", listings[0].Title)
	assert.Equal(t, "beach hut", listings[1].Title)
	assert.Equal(t, "zebra house", listings[2].Title)
}

func TestSortListings_DefaultNewestFirst(t *testing.T) {
	now := time.Now()
	listings := []models.Listing{
		{ID: 1, CreatedAt: now.Add(-2 * time.Hour)},
		{ID: 2, CreatedAt: now},
		{ID: 3, CreatedAt: now.Add(-time.Hour)},
	}
	SortListings(listings, "bogus_key")

	assert.Equal(t, uint(2), listings[0].ID)
	assert.Equal(t, uint(3), listings[1].ID)
	assert.Equal(t, uint(1), listings[2].ID)
}

func TestOrderClause(t *testing.T) {
	assert.Equal(t, "price_per_night ASC", OrderClause(SortPriceAsc))
	assert.Equal(t, "views_count DESC", OrderClause(SortPopularity))
	assert.Equal(t, "created_at DESC", OrderClause(""))
	assert.Equal(t, "created_at DESC", OrderClause("bogus_key"))
}

func TestPaginateListings_Slices(t *testing.T) {
	listings := priceListings(1, 2, 3, 4, 5, 6, 7)

	page := PaginateListings(listings, PageParams{Page: 1, PerPage: 3})
	assert.Len(t, page.Items, 3)
	assert.Equal(t, int64(7), page.TotalCount)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, uint(1), page.Items[0].ID)

	page = PaginateListings(listings, PageParams{Page: 3, PerPage: 3})
	assert.Len(t, page.Items, 1)
	assert.Equal(t, uint(7), page.Items[0].ID)
}

func TestPaginateListings_PastEnd(t *testing.T) {
	listings := priceListings(1, 2, 3)

	page := PaginateListings(listings, PageParams{Page: 5, PerPage: 10})
	assert.Empty(t, page.Items)
	assert.Equal(t, int64(3), page.TotalCount)
}

func TestPageParams_Normalize(t *testing.T) {
	p := PageParams{}.Normalize()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultPageSize, p.PerPage)

	p = PageParams{Page: -3, PerPage: 1000}.Normalize()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultPageSize, p.PerPage)

	p = PageParams{Page: 2, PerPage: 100}.Normalize()
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 100, p.PerPage)
}

func TestNewPage_TotalPages(t *testing.T) {
	page := NewPage([]int{1, 2, 3}, 31, PageParams{Page: 1, PerPage: 10})
	assert.Equal(t, 4, page.TotalPages)

	page = NewPage([]int{}, 30, PageParams{Page: 1, PerPage: 10})
	assert.Equal(t, 3, page.TotalPages)

	page = NewPage[int](nil, 0, PageParams{Page: 1, PerPage: 10})
	assert.NotNil(t, page.Items)
	assert.Equal(t, 0, page.TotalPages)
}
