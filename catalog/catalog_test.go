package catalog_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"storefront/catalog"
	"storefront/errs"
	"storefront/models"
	"storefront/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSlugify(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Blue Ceramic Mug":        "blue-ceramic-mug",
		"  Ankara -- Print!! ":    "ankara-print",
		"Crème Brûlée Set":        "creme-brulee-set",
		"100% Cotton T-Shirt (L)": "100-cotton-t-shirt-l",
		"***":                     "",
	}
	for in, want := range cases {
		assert.Equal(t, want, catalog.Slugify(in), in)
	}
}

func TestCreateDerivesUniqueSlugs(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := catalog.NewService(store.NewMemory())

	in := catalog.ProductInput{Name: "Blue Mug", Price: decimal.RequireFromString("129.99"), Images: []string{"mug.jpg"}}
	first, err := svc.Create(ctx, in)
	require.NoError(t, err)
	second, err := svc.Create(ctx, in)
	require.NoError(t, err)

	assert.Equal(t, "blue-mug", first.Slug)
	assert.Equal(t, "blue-mug-2", second.Slug)
	assert.False(t, first.ID.IsZero())

	got, err := svc.GetBySlug(ctx, "blue-mug-2")
	require.NoError(t, err)
	assert.Equal(t, second.ID, got.ID)
}

func TestCreateValidation(t *testing.T) {
	t.Parallel()
	svc := catalog.NewService(store.NewMemory())

	_, err := svc.Create(context.Background(), catalog.ProductInput{Name: "Mug", Price: decimal.NewFromInt(-1)})
	var e *errs.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, errs.KindValidation, e.Kind)
	assert.Contains(t, e.Fields, "price")

	_, err = svc.Create(context.Background(), catalog.ProductInput{Name: "  "})
	require.True(t, errors.As(err, &e))
	assert.Contains(t, e.Fields, "name")
}

func TestUpdateAndDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := catalog.NewService(store.NewMemory())

	p, err := svc.Create(ctx, catalog.ProductInput{Name: "Lamp", Price: decimal.NewFromInt(40)})
	require.NoError(t, err)

	name, slug := "Desk Lamp", "Desk Lamp"
	updated, err := svc.Update(ctx, p.ID, catalog.ProductPatch{Name: &name, Slug: &slug})
	require.NoError(t, err)
	assert.Equal(t, "Desk Lamp", updated.Name)
	assert.Equal(t, "desk-lamp", updated.Slug)
	assert.True(t, updated.Price.Equal(decimal.NewFromInt(40)))

	negative := decimal.NewFromInt(-5)
	_, err = svc.Update(ctx, p.ID, catalog.ProductPatch{Price: &negative})
	assert.True(t, errs.Is(err, errs.KindValidation))

	_, err = svc.Update(ctx, primitive.NewObjectID(), catalog.ProductPatch{Name: &name})
	assert.True(t, errs.Is(err, errs.KindNotFound))

	require.NoError(t, svc.Delete(ctx, p.ID))
	_, err = svc.Get(ctx, p.ID)
	assert.True(t, errs.Is(err, errs.KindNotFound))
}

func TestList(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := catalog.NewService(store.NewMemory())

	for _, name := range []string{"Blue Mug", "Red Mug", "Lamp"} {
		_, err := svc.Create(ctx, catalog.ProductInput{Name: name, Price: decimal.NewFromInt(1)})
		require.NoError(t, err)
	}

	mugs, err := svc.List(ctx, "MUG", 0)
	require.NoError(t, err)
	assert.Len(t, mugs, 2)

	one, err := svc.List(ctx, "", 1)
	require.NoError(t, err)
	assert.Len(t, one, 1)

	_, err = svc.List(ctx, "", -1)
	assert.True(t, errs.Is(err, errs.KindValidation))
}

func TestWriteXLSX(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := catalog.NewService(store.NewMemory())

	p, err := svc.Create(ctx, catalog.ProductInput{Name: "Blue Mug", Price: decimal.RequireFromString("129.99"), Images: []string{"a.jpg", "b.jpg"}})
	require.NoError(t, err)
	products, err := svc.All(ctx)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, catalog.WriteXLSX(&buf, products))

	file, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)
	rows := file.Sheets[0].Rows
	require.Len(t, rows, 2)
	assert.Equal(t, "Slug", rows[0].Cells[1].Value)
	assert.Equal(t, p.ID.Hex(), rows[1].Cells[0].Value)
	assert.Equal(t, "blue-mug", rows[1].Cells[1].Value)
	assert.Equal(t, "a.jpg,b.jpg", rows[1].Cells[5].Value)
}

func TestAllIsNotCappedLikeList(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := store.NewMemory()
	svc := catalog.NewService(st)

	total := catalog.MaxListLimit + 50
	for i := 0; i < total; i++ {
		require.NoError(t, st.CreateProduct(ctx, &models.Product{
			Name:  fmt.Sprintf("Item %d", i),
			Slug:  fmt.Sprintf("item-%d", i),
			Price: decimal.NewFromInt(int64(i)),
		}))
	}

	page, err := svc.List(ctx, "", 0)
	require.NoError(t, err)
	assert.Len(t, page, catalog.MaxListLimit)

	all, err := svc.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, total)

	var buf bytes.Buffer
	require.NoError(t, catalog.WriteXLSX(&buf, all))
	file, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	assert.Len(t, file.Sheets[0].Rows, total+1)
}

func TestCreateFallsBackWhenNameHasNoLatinLetters(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := catalog.NewService(store.NewMemory())

	p, err := svc.Create(ctx, catalog.ProductInput{Name: "Кружка", Price: decimal.NewFromInt(10)})
	require.NoError(t, err)
	assert.Equal(t, "Кружка", p.Name)
	assert.Regexp(t, `^product-[0-9a-f]{8}$`, p.Slug)

	got, err := svc.GetBySlug(ctx, p.Slug)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
}
