package mongodb

import (
	"context"
	"fmt"
	"time"

	"carefund/internal/models"
	"carefund/internal/repositories/interfaces"
	"carefund/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type userRepository struct {
	collection *mongo.Collection
	cache      CacheService
}

func NewUserRepository(db *mongo.Database, cache CacheService) interfaces.UserRepository {
	return &userRepository{
		collection: db.Collection("users"),
		cache:      cache,
	}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	r.cacheUser(ctx, user)

	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	if user := r.getUserFromCache(ctx, id.Hex()); user != nil {
		return user, nil
	}

	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "deleted_at": nil}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	r.cacheUser(ctx, &user)

	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id, "deleted_at": nil},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	r.invalidateUserCache(ctx, id.Hex())

	return nil
}

func (r *userRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	// Soft delete
	return r.Update(ctx, id, map[string]interface{}{
		"deleted_at": time.Now(),
		"is_active":  false,
	})
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{
		"email":      email,
		"deleted_at": nil,
	}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return &user, nil
}

func (r *userRepository) GetByPhone(ctx context.Context, phone string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{
		"phone":      phone,
		"deleted_at": nil,
	}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("failed to get user by phone: %w", err)
	}

	return &user, nil
}

func (r *userRepository) UpdateEmailVerification(ctx context.Context, id primitive.ObjectID, verified bool) error {
	updates := map[string]interface{}{
		"is_verified": verified,
	}
	if verified {
		updates["email_verified_at"] = time.Now()
	}
	return r.Update(ctx, id, updates)
}

func (r *userRepository) UpdateLastLogin(ctx context.Context, id primitive.ObjectID) error {
	return r.Update(ctx, id, map[string]interface{}{
		"last_login_at": time.Now(),
	})
}

func (r *userRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.User, int64, error) {
	filter := params.GetSearchFilter([]string{"name", "email", "phone"})
	filter["deleted_at"] = nil

	return r.findUsers(ctx, filter, params)
}

func (r *userRepository) GetByRole(ctx context.Context, role models.UserRole, params *utils.PaginationParams) ([]*models.User, int64, error) {
	filter := bson.M{"role": role, "deleted_at": nil}
	return r.findUsers(ctx, filter, params)
}

func (r *userRepository) GetTotalCount(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"deleted_at": nil})
}

func (r *userRepository) GetCountByRole(ctx context.Context, role models.UserRole) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"role": role, "deleted_at": nil})
}

func (r *userRepository) findUsers(ctx context.Context, filter bson.M, params *utils.PaginationParams) ([]*models.User, int64, error) {
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []*models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, 0, fmt.Errorf("failed to decode users: %w", err)
	}

	return users, total, nil
}

func (r *userRepository) cacheUser(ctx context.Context, user *models.User) {
	if r.cache != nil {
		r.cache.Set(ctx, utils.CacheUserPrefix+user.ID.Hex(), user, defaultCacheTTL)
	}
}

func (r *userRepository) getUserFromCache(ctx context.Context, userID string) *models.User {
	if r.cache == nil {
		return nil
	}

	var user models.User
	if err := r.cache.Get(ctx, utils.CacheUserPrefix+userID, &user); err != nil {
		return nil
	}

	return &user
}

func (r *userRepository) invalidateUserCache(ctx context.Context, userID string) {
	if r.cache != nil {
		r.cache.Delete(ctx, utils.CacheUserPrefix+userID)
	}
}
