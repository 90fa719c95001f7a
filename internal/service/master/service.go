package master

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/master/client"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/master/material"
	"github.com/cmlabs-hris/fleet-backend-go/internal/domain/user"
)

type MasterService interface {
	// Client operations
	CreateClient(ctx context.Context, actor user.Identity, req client.CreateClientRequest) (client.ClientResponse, error)
	ListClients(ctx context.Context, actor user.Identity, search string) ([]client.ClientResponse, error)

	// Material operations
	CreateMaterial(ctx context.Context, actor user.Identity, req material.CreateMaterialRequest) (material.MaterialResponse, error)
	ListMaterials(ctx context.Context, actor user.Identity, search string) ([]material.MaterialResponse, error)
}

type masterServiceImpl struct {
	clientRepo   client.ClientRepository
	materialRepo material.MaterialRepository
}

func NewMasterService(clientRepo client.ClientRepository, materialRepo material.MaterialRepository) MasterService {
	return &masterServiceImpl{
		clientRepo:   clientRepo,
		materialRepo: materialRepo,
	}
}

// ==================== CLIENT OPERATIONS ====================

func (s *masterServiceImpl) CreateClient(ctx context.Context, actor user.Identity, req client.CreateClientRequest) (client.ClientResponse, error) {
	if !user.HasPermission(actor.Role, user.PermissionDeliveryManage) {
		return client.ClientResponse{}, user.ErrInsufficientPermissions
	}
	if err := req.Validate(); err != nil {
		return client.ClientResponse{}, err
	}

	created, err := s.clientRepo.Create(ctx, req.Name)
	if err != nil {
		if errors.Is(err, client.ErrClientNameExists) {
			return client.ClientResponse{}, err
		}
		return client.ClientResponse{}, fmt.Errorf("failed to create client: %w", err)
	}
	return client.NewClientResponse(created), nil
}

func (s *masterServiceImpl) ListClients(ctx context.Context, actor user.Identity, search string) ([]client.ClientResponse, error) {
	if !actor.IsAuthenticated() {
		return nil, auth.ErrUnauthorized
	}
	clients, err := s.clientRepo.List(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}

	responses := make([]client.ClientResponse, 0, len(clients))
	for _, c := range clients {
		responses = append(responses, client.NewClientResponse(c))
	}
	return responses, nil
}

// ==================== MATERIAL OPERATIONS ====================

func (s *masterServiceImpl) CreateMaterial(ctx context.Context, actor user.Identity, req material.CreateMaterialRequest) (material.MaterialResponse, error) {
	if !user.HasPermission(actor.Role, user.PermissionDeliveryManage) {
		return material.MaterialResponse{}, user.ErrInsufficientPermissions
	}
	if err := req.Validate(); err != nil {
		return material.MaterialResponse{}, err
	}

	created, err := s.materialRepo.Create(ctx, req.Name)
	if err != nil {
		if errors.Is(err, material.ErrMaterialNameExists) {
			return material.MaterialResponse{}, err
		}
		return material.MaterialResponse{}, fmt.Errorf("failed to create material: %w", err)
	}
	return material.NewMaterialResponse(created), nil
}

func (s *masterServiceImpl) ListMaterials(ctx context.Context, actor user.Identity, search string) ([]material.MaterialResponse, error) {
	if !actor.IsAuthenticated() {
		return nil, auth.ErrUnauthorized
	}
	materials, err := s.materialRepo.List(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("failed to list materials: %w", err)
	}

	responses := make([]material.MaterialResponse, 0, len(materials))
	for _, m := range materials {
		responses = append(responses, material.NewMaterialResponse(m))
	}
	return responses, nil
}
