package persistence

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/ecommerce/backend/internal/domain/catalog"
	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/ecommerce/backend/internal/infrastructure/persistence/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoProductRepository implements catalog.ProductRepository on the products collection
type MongoProductRepository struct {
	coll *mongo.Collection
}

// NewMongoProductRepository creates a new MongoProductRepository
func NewMongoProductRepository(db *Database) *MongoProductRepository {
	return &MongoProductRepository{coll: db.Collection(ProductsCollection)}
}

// Create inserts the product. SKU uniqueness is enforced by the unique index.
func (r *MongoProductRepository) Create(ctx context.Context, product *catalog.Product) error {
	model := models.ProductModelFromDomain(product)
	model.ID = primitive.NewObjectID()

	if _, err := r.coll.InsertOne(ctx, model); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return catalog.ErrSKUTaken
		}
		return fmt.Errorf("insert product: %w", err)
	}
	product.ID = model.ID.Hex()
	return nil
}

// Update writes the product fields if the stored version still matches
func (r *MongoProductRepository) Update(ctx context.Context, product *catalog.Product) error {
	oid, err := parseID(product.ID, catalog.ErrProductNotFound)
	if err != nil {
		return err
	}
	model := models.ProductModelFromDomain(product)

	filter := activeScope(bson.M{"_id": oid, "version": product.Version})
	update := bson.M{
		"$set": model.SetFields(),
		"$inc": bson.M{"version": 1},
	}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return catalog.ErrSKUTaken
		}
		return fmt.Errorf("update product: %w", err)
	}
	if res.MatchedCount == 0 {
		if _, err := r.FindByID(ctx, product.ID); err != nil {
			return err
		}
		return shared.ErrConcurrencyConflict
	}
	product.IncrementVersion()
	return nil
}

// Deactivate soft-deletes an active product
func (r *MongoProductRepository) Deactivate(ctx context.Context, id string) error {
	oid, err := parseID(id, catalog.ErrProductNotFound)
	if err != nil {
		return err
	}
	res, err := r.coll.UpdateOne(ctx,
		activeScope(bson.M{"_id": oid}),
		bson.M{
			"$set": bson.M{"isActive": false, "updatedAt": time.Now()},
			"$inc": bson.M{"version": 1},
		},
	)
	if err != nil {
		return fmt.Errorf("deactivate product: %w", err)
	}
	if res.MatchedCount == 0 {
		return catalog.ErrProductNotFound
	}
	return nil
}

// FindByID finds an active product by ID
func (r *MongoProductRepository) FindByID(ctx context.Context, id string) (*catalog.Product, error) {
	oid, err := parseID(id, catalog.ErrProductNotFound)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, activeScope(bson.M{"_id": oid}))
}

// FindByIDUnscoped finds a product by ID including soft-deleted ones
func (r *MongoProductRepository) FindByIDUnscoped(ctx context.Context, id string) (*catalog.Product, error) {
	oid, err := parseID(id, catalog.ErrProductNotFound)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

// FindBySKU finds an active product by exact normalized SKU
func (r *MongoProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	sku = catalog.NormalizeSKU(sku)
	if sku == "" {
		return nil, catalog.ErrProductNotFound
	}
	return r.findOne(ctx, activeScope(bson.M{"sku": sku}))
}

// FindAll returns a page of active products matching the filter
func (r *MongoProductRepository) FindAll(ctx context.Context, filter catalog.ProductFilter) ([]*catalog.Product, int64, error) {
	page := filter.Page.Normalize()
	query := productQuery(filter)

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	opts := options.Find().
		SetSort(sortSpec(filter.SortBy, ProductSortFields, "createdAt", filter.SortOrder)).
		SetSkip(int64(page.Offset())).
		SetLimit(int64(page.Limit))
	products, err := r.find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// FindFeatured returns active featured products, newest first
func (r *MongoProductRepository) FindFeatured(ctx context.Context, limit int) ([]*catalog.Product, error) {
	limit = shared.PageRequest{Page: 1, Limit: limit}.Normalize().Limit
	opts := options.Find().SetSort(newestFirst).SetLimit(int64(limit))
	return r.find(ctx, activeScope(bson.M{"isFeatured": true}), opts)
}

// AdjustStock applies the adjustment in a single conditional update. A
// subtraction only matches when enough stock is available, so stock never
// goes negative under concurrent requests.
func (r *MongoProductRepository) AdjustStock(ctx context.Context, id string, adj catalog.StockAdjustment) (int, error) {
	oid, err := parseID(id, catalog.ErrProductNotFound)
	if err != nil {
		return 0, err
	}
	delta := adj.Delta()

	filter := activeScope(bson.M{"_id": oid})
	if delta < 0 {
		filter["stock"] = bson.M{"$gte": -delta}
	}
	update := bson.M{
		"$inc": bson.M{"stock": delta, "version": 1},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var model models.ProductModel
	err = r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&model)
	if errors.Is(err, mongo.ErrNoDocuments) {
		if _, findErr := r.FindByID(ctx, id); findErr != nil {
			return 0, findErr
		}
		return 0, catalog.ErrOutOfStock
	}
	if err != nil {
		return 0, fmt.Errorf("adjust stock: %w", err)
	}
	return model.Stock, nil
}

// DistinctCategories returns the distinct categories of active products in ascending order
func (r *MongoProductRepository) DistinctCategories(ctx context.Context) ([]string, error) {
	values, err := r.coll.Distinct(ctx, "category", activeScope(bson.M{}))
	if err != nil {
		return nil, fmt.Errorf("distinct categories: %w", err)
	}
	categories := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			categories = append(categories, s)
		}
	}
	sort.Strings(categories)
	return categories, nil
}

func (r *MongoProductRepository) findOne(ctx context.Context, filter bson.M) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.coll.FindOne(ctx, filter).Decode(&model); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, catalog.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *MongoProductRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*catalog.Product, error) {
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	var docs []models.ProductModel
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	products := make([]*catalog.Product, len(docs))
	for i := range docs {
		products[i] = docs[i].ToDomain()
	}
	return products, nil
}

// productQuery translates a ProductFilter into an active-scoped query
func productQuery(f catalog.ProductFilter) bson.M {
	q := bson.M{}
	if c := strings.TrimSpace(f.Category); c != "" {
		q["category"] = categoryPattern(c)
	}
	if f.MinPrice != nil || f.MaxPrice != nil {
		price := bson.M{}
		if f.MinPrice != nil {
			price["$gte"] = *f.MinPrice
		}
		if f.MaxPrice != nil {
			price["$lte"] = *f.MaxPrice
		}
		q["price"] = price
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		q["$text"] = bson.M{"$search": s}
	}
	return activeScope(q)
}

// categoryPattern matches the literal category text anywhere, ignoring case
func categoryPattern(category string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(category), Options: "i"}
}

// Ensure MongoProductRepository implements ProductRepository
var _ catalog.ProductRepository = (*MongoProductRepository)(nil)
