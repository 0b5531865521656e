package services

import (
	"context"

	"github.com/Durgeshmauryaji/project-management-app/logging"
	"github.com/Durgeshmauryaji/project-management-app/models"
	"github.com/Durgeshmauryaji/project-management-app/response"
	"github.com/Durgeshmauryaji/project-management-app/utils"

	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	UserCollection *mongo.Collection
	Breaker        *gobreaker.CircuitBreaker
}

func NewUserService(userCollection *mongo.Collection, breaker *gobreaker.CircuitBreaker) *UserService {
	return &UserService{
		UserCollection: userCollection,
		Breaker:        breaker,
	}
}

// Register validates and persists a new user with a bcrypt password hash.
func (s *UserService) Register(ctx context.Context, name, email, password string) error {
	if name == "" || email == "" || password == "" {
		return response.NewValidationError("All fields are required")
	}

	_, err := s.Breaker.Execute(func() (interface{}, error) {
		err := s.UserCollection.FindOne(ctx, bson.M{"email": email}).Err()
		return nil, err
	})
	if err == nil {
		return response.NewConflictError("Email already registered")
	}
	if err != mongo.ErrNoDocuments {
		logging.Logger.Errorf("Event ID: REGISTER_LOOKUP_FAILED, Description: Email lookup failed for %s: %v", email, err)
		return response.NewServerError("Server error during registration")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logging.Logger.Errorf("Event ID: REGISTER_HASH_FAILED, Description: Failed to hash password: %v", err)
		return response.NewServerError("Server error during registration")
	}

	user := models.User{
		ID:       primitive.NewObjectID(),
		Name:     name,
		Email:    email,
		Password: string(hashedPassword),
	}

	_, err = s.Breaker.Execute(func() (interface{}, error) {
		return s.UserCollection.InsertOne(ctx, user)
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// Unique index on email; covers a register racing this one.
			return response.NewConflictError("Email already registered")
		}
		logging.Logger.Errorf("Event ID: REGISTER_INSERT_FAILED, Description: Failed to save user %s: %v", email, err)
		return response.NewServerError("Server error during registration")
	}

	logging.Logger.Infof("Event ID: REGISTER_SUCCESS, Description: New user registered: %s", email)
	return nil
}

// Login verifies credentials and issues a signed token. Unknown email and
// wrong password produce the same message so accounts cannot be enumerated.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.PublicUser, string, error) {
	if email == "" || password == "" {
		return nil, "", response.NewValidationError("Email and password are required")
	}

	result, err := s.Breaker.Execute(func() (interface{}, error) {
		var user models.User
		err := s.UserCollection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
		return user, err
	})
	if err == mongo.ErrNoDocuments {
		logging.Logger.Warnf("Event ID: LOGIN_UNKNOWN_EMAIL, Description: Login attempt for unknown email %s", email)
		return nil, "", response.NewAuthError("Invalid email or password")
	}
	if err != nil {
		logging.Logger.Errorf("Event ID: LOGIN_LOOKUP_FAILED, Description: User lookup failed for %s: %v", email, err)
		return nil, "", response.NewServerError("Server error during login")
	}
	user := result.(models.User)

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		logging.Logger.Warnf("Event ID: LOGIN_BAD_PASSWORD, Description: Password mismatch for %s", email)
		return nil, "", response.NewAuthError("Invalid email or password")
	}

	token, err := utils.GenerateToken(user.ID.Hex())
	if err != nil {
		logging.Logger.Errorf("Event ID: LOGIN_TOKEN_FAILED, Description: Failed to sign token for %s: %v", email, err)
		return nil, "", response.NewServerError("Server error during login")
	}

	logging.Logger.Infof("Event ID: LOGIN_SUCCESS, Description: Login successful: %s", email)
	public := user.Public()
	return &public, token, nil
}

// ListUsers returns every user except the requester, projected to public
// fields.
func (s *UserService) ListUsers(ctx context.Context, requesterID primitive.ObjectID) ([]models.PublicUser, error) {
	result, err := s.Breaker.Execute(func() (interface{}, error) {
		opts := options.Find().SetProjection(bson.M{"name": 1, "email": 1})
		cursor, err := s.UserCollection.Find(ctx, bson.M{"_id": bson.M{"$ne": requesterID}}, opts)
		if err != nil {
			return nil, err
		}
		defer cursor.Close(ctx)

		users := []models.PublicUser{}
		if err := cursor.All(ctx, &users); err != nil {
			return nil, err
		}
		return users, nil
	})
	if err != nil {
		logging.Logger.Errorf("Event ID: USER_LIST_FAILED, Description: Failed to fetch users: %v", err)
		return nil, response.NewServerError("Failed to fetch users")
	}

	return result.([]models.PublicUser), nil
}
