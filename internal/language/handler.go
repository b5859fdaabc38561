package language

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Repository reads the translation table.
type Repository interface {
	List(ctx context.Context) ([]Entry, error)
}

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database, collection string) *MongoRepository {
	return &MongoRepository{coll: db.Collection(collection)}
}

func (r *MongoRepository) List(ctx context.Context) ([]Entry, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	entries := make([]Entry, 0)
	if err := cur.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Handler exposes the read-only language endpoint.
type Handler struct {
	repo Repository
	log  *zap.Logger
}

func NewHandler(repo Repository, log *zap.Logger) *Handler {
	return &Handler{repo: repo, log: log}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/languages", h.listLanguages)
}

func (h *Handler) listLanguages(c *fiber.Ctx) error {
	entries, err := h.repo.List(c.Context())
	if err != nil {
		h.log.Error("Error fetching languages", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Error fetching languages"})
	}
	return c.JSON(fiber.Map{"success": true, "data": entries})
}
