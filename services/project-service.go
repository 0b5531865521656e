package services

import (
	"context"
	"time"

	"github.com/Durgeshmauryaji/project-management-app/logging"
	"github.com/Durgeshmauryaji/project-management-app/models"
	"github.com/Durgeshmauryaji/project-management-app/response"

	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProjectService struct {
	ProjectsCollection *mongo.Collection
	UsersCollection    *mongo.Collection
	Breaker            *gobreaker.CircuitBreaker
}

func NewProjectService(projectsCollection, usersCollection *mongo.Collection, breaker *gobreaker.CircuitBreaker) *ProjectService {
	return &ProjectService{
		ProjectsCollection: projectsCollection,
		UsersCollection:    usersCollection,
		Breaker:            breaker,
	}
}

// CreateProject persists a new project owned by ownerID with an empty
// member list.
func (s *ProjectService) CreateProject(ctx context.Context, ownerID primitive.ObjectID, name, description string) (*models.Project, error) {
	if name == "" {
		return nil, response.NewValidationError("Project name is required")
	}

	project := models.Project{
		ID:          primitive.NewObjectID(),
		Name:        name,
		Description: description,
		CreatedBy:   ownerID,
		Members:     []primitive.ObjectID{},
		CreatedAt:   time.Now(),
	}

	_, err := s.Breaker.Execute(func() (interface{}, error) {
		return s.ProjectsCollection.InsertOne(ctx, project)
	})
	if err != nil {
		logging.Logger.Errorf("Event ID: PROJECT_CREATE_FAILED, Description: Failed to create project %s: %v", name, err)
		return nil, response.NewServerError("Server error while creating project")
	}

	logging.Logger.Infof("Event ID: PROJECT_CREATED, Description: Project created: %s", name)
	return &project, nil
}

// ListOwnedBy returns the projects created by userID. Projects where the
// user is only a member are deliberately not listed; those are reachable
// by direct fetch.
func (s *ProjectService) ListOwnedBy(ctx context.Context, userID primitive.ObjectID) ([]models.Project, error) {
	result, err := s.Breaker.Execute(func() (interface{}, error) {
		cursor, err := s.ProjectsCollection.Find(ctx, bson.M{"createdBy": userID})
		if err != nil {
			return nil, err
		}
		defer cursor.Close(ctx)

		projects := []models.Project{}
		if err := cursor.All(ctx, &projects); err != nil {
			return nil, err
		}
		return projects, nil
	})
	if err != nil {
		logging.Logger.Errorf("Event ID: PROJECT_LIST_FAILED, Description: Failed to fetch projects for %s: %v", userID.Hex(), err)
		return nil, response.NewServerError("Server error while fetching projects")
	}

	return result.([]models.Project), nil
}

// GetByID returns a project with resolved members, gated on the requester
// being its owner or a member.
func (s *ProjectService) GetByID(ctx context.Context, projectID string, requesterID primitive.ObjectID) (*models.ProjectView, error) {
	objectID, err := primitive.ObjectIDFromHex(projectID)
	if err != nil {
		return nil, response.NewValidationError("Invalid project ID format")
	}

	project, err := s.findProject(ctx, objectID)
	if err != nil {
		return nil, err
	}

	if !project.CanView(requesterID) {
		logging.Logger.Warnf("Event ID: PROJECT_ACCESS_DENIED, Description: User %s denied access to project %s", requesterID.Hex(), projectID)
		return nil, response.NewForbiddenError("Access denied to this project")
	}

	return s.resolveMembers(ctx, project)
}

// AddMember appends a member to the project. Only the owner may do this;
// adding an existing member is a no-op, not an error.
func (s *ProjectService) AddMember(ctx context.Context, projectID string, requesterID, memberID primitive.ObjectID) (*models.ProjectView, error) {
	objectID, err := primitive.ObjectIDFromHex(projectID)
	if err != nil {
		return nil, response.NewValidationError("Invalid project ID format")
	}

	project, err := s.findProject(ctx, objectID)
	if err != nil {
		return nil, err
	}

	if !project.IsOwner(requesterID) {
		return nil, response.NewForbiddenError("Only the project owner can add members")
	}

	if !project.HasMember(memberID) {
		// $addToSet keeps the members set duplicate-free even when two
		// owner requests race.
		_, err = s.Breaker.Execute(func() (interface{}, error) {
			return s.ProjectsCollection.UpdateOne(ctx,
				bson.M{"_id": objectID},
				bson.M{"$addToSet": bson.M{"members": memberID}})
		})
		if err != nil {
			logging.Logger.Errorf("Event ID: MEMBER_ADD_FAILED, Description: Failed to add member %s to project %s: %v", memberID.Hex(), projectID, err)
			return nil, response.NewServerError("Failed to add member")
		}
		logging.Logger.Infof("Event ID: MEMBER_ADDED, Description: Added member %s to project %s", memberID.Hex(), project.Name)
	}

	updated, err := s.findProject(ctx, objectID)
	if err != nil {
		return nil, err
	}
	return s.resolveMembers(ctx, updated)
}

func (s *ProjectService) findProject(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	result, err := s.Breaker.Execute(func() (interface{}, error) {
		var project models.Project
		err := s.ProjectsCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&project)
		return project, err
	})
	if err == mongo.ErrNoDocuments {
		return nil, response.NewNotFoundError("Project not found")
	}
	if err != nil {
		logging.Logger.Errorf("Event ID: PROJECT_FETCH_FAILED, Description: Failed to fetch project %s: %v", id.Hex(), err)
		return nil, response.NewServerError("Failed to fetch project")
	}

	project := result.(models.Project)
	return &project, nil
}

// resolveMembers expands the project's member ids into public user
// projections.
func (s *ProjectService) resolveMembers(ctx context.Context, project *models.Project) (*models.ProjectView, error) {
	view := &models.ProjectView{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		CreatedBy:   project.CreatedBy,
		Members:     []models.PublicUser{},
		CreatedAt:   project.CreatedAt,
	}

	if len(project.Members) == 0 {
		return view, nil
	}

	result, err := s.Breaker.Execute(func() (interface{}, error) {
		opts := options.Find().SetProjection(bson.M{"name": 1, "email": 1})
		cursor, err := s.UsersCollection.Find(ctx, bson.M{"_id": bson.M{"$in": project.Members}}, opts)
		if err != nil {
			return nil, err
		}
		defer cursor.Close(ctx)

		members := []models.PublicUser{}
		if err := cursor.All(ctx, &members); err != nil {
			return nil, err
		}
		return members, nil
	})
	if err != nil {
		logging.Logger.Errorf("Event ID: MEMBER_RESOLVE_FAILED, Description: Failed to resolve members of project %s: %v", project.ID.Hex(), err)
		return nil, response.NewServerError("Failed to fetch project")
	}

	view.Members = result.([]models.PublicUser)
	return view, nil
}
