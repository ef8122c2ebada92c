// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-storefront/internal/logger"
	"github.com/MKhiriev/go-storefront/internal/store"
	"github.com/MKhiriev/go-storefront/models"
)

// GroupByParent indexes categories by parent id, keeping input order inside
// each group.
func GroupByParent(categories []models.ProductCategory) map[int64][]models.ProductCategory {
	groups := make(map[int64][]models.ProductCategory)
	for _, c := range categories {
		groups[c.ParentID] = append(groups[c.ParentID], c)
	}
	return groups
}

// BuildForest attaches every category to its parent, starting from the
// roots (ParentID 0). Categories whose parent does not exist are left out
// and their ids returned as orphans. Categories caught in a parent cycle
// never reach a root and are left out silently.
func BuildForest(categories []models.ProductCategory) ([]*models.CategoryNode, []int64) {
	groups := GroupByParent(categories)

	known := make(map[int64]struct{}, len(categories))
	for _, c := range categories {
		known[c.ID] = struct{}{}
	}

	var orphans []int64
	for _, c := range categories {
		if c.IsRoot() {
			continue
		}
		if _, ok := known[c.ParentID]; !ok {
			orphans = append(orphans, c.ID)
		}
	}

	visited := make(map[int64]struct{}, len(categories))
	return attachChildren(groups, 0, visited), orphans
}

func attachChildren(groups map[int64][]models.ProductCategory, parentID int64, visited map[int64]struct{}) []*models.CategoryNode {
	group := groups[parentID]
	nodes := make([]*models.CategoryNode, 0, len(group))

	for _, c := range group {
		if _, seen := visited[c.ID]; seen {
			continue
		}
		visited[c.ID] = struct{}{}

		nodes = append(nodes, &models.CategoryNode{
			ID:       c.ID,
			ParentID: c.ParentID,
			Name:     c.Name,
			Children: attachChildren(groups, c.ID, visited),
		})
	}

	return nodes
}

// AncestorPath lists the categories from the root down to categoryID.
func AncestorPath(categories []models.ProductCategory, categoryID int64) ([]models.ProductCategory, error) {
	byID := make(map[int64]models.ProductCategory, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	current, ok := byID[categoryID]
	if !ok {
		return nil, fmt.Errorf("%w: %d", store.ErrCategoryNotFound, categoryID)
	}

	visited := map[int64]struct{}{}
	var path []models.ProductCategory
	for {
		if _, seen := visited[current.ID]; seen {
			return nil, fmt.Errorf("%w: at category %d", ErrCategoryCycle, current.ID)
		}
		visited[current.ID] = struct{}{}
		path = append(path, current)

		if current.IsRoot() {
			break
		}
		parent, ok := byID[current.ParentID]
		if !ok {
			// orphan: the path starts at the topmost known ancestor
			break
		}
		current = parent
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}

// AncestorTree renders the ancestor path of categoryID as a single-branch
// tree whose leaf is categoryID.
func AncestorTree(categories []models.ProductCategory, categoryID int64) (*models.CategoryNode, error) {
	path, err := AncestorPath(categories, categoryID)
	if err != nil {
		return nil, err
	}

	var root, tail *models.CategoryNode
	for _, c := range path {
		node := &models.CategoryNode{ID: c.ID, ParentID: c.ParentID, Name: c.Name, Children: []*models.CategoryNode{}}
		if root == nil {
			root = node
		} else {
			tail.Children = append(tail.Children, node)
		}
		tail = node
	}

	return root, nil
}

// DescendantIDs returns every category below categoryID, excluding
// categoryID itself, in breadth-first order.
func DescendantIDs(categories []models.ProductCategory, categoryID int64) []int64 {
	groups := GroupByParent(categories)

	ids := []int64{}
	visited := map[int64]struct{}{categoryID: {}}
	queue := []int64{categoryID}
	for len(queue) > 0 {
		parent := queue[0]
		queue = queue[1:]

		for _, child := range groups[parent] {
			if _, seen := visited[child.ID]; seen {
				continue
			}
			visited[child.ID] = struct{}{}
			ids = append(ids, child.ID)
			queue = append(queue, child.ID)
		}
	}

	return ids
}

type categoryService struct {
	categoryRepository store.CategoryRepository
	logger             *logger.Logger
}

func NewCategoryService(categoryRepository store.CategoryRepository, logger *logger.Logger) CategoryService {
	return &categoryService{
		categoryRepository: categoryRepository,
		logger:             logger,
	}
}

func (s *categoryService) Forest(ctx context.Context) ([]*models.CategoryNode, error) {
	categories, err := s.categoryRepository.GetAllCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("categories were not loaded: %w", err)
	}

	forest, orphans := BuildForest(categories)
	if len(orphans) > 0 {
		logger.FromContext(ctx).Warn().Ints64("orphans", orphans).Msg("categories with unknown parent were dropped")
	}

	return forest, nil
}

func (s *categoryService) AncestorTree(ctx context.Context, categoryID int64) (*models.CategoryNode, error) {
	categories, err := s.categoryRepository.GetAllCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("categories were not loaded: %w", err)
	}

	return AncestorTree(categories, categoryID)
}

func (s *categoryService) Expand(ctx context.Context, categoryID int64) ([]int64, error) {
	categories, err := s.categoryRepository.GetAllCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("categories were not loaded: %w", err)
	}

	return append([]int64{categoryID}, DescendantIDs(categories, categoryID)...), nil
}
