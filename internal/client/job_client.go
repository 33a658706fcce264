package client

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Mohmmed-Zaid/jobluu-client/internal/model"
)

// JobClient handles communication with the job endpoints. All routes
// require a bearer token.
type JobClient struct {
	api    *Client
	logger *zap.Logger
}

// NewJobClient creates a new job client
func NewJobClient(api *Client, logger *zap.Logger) *JobClient {
	return &JobClient{api: api, logger: logger}
}

// GetAll retrieves every job listing
func (c *JobClient) GetAll(ctx context.Context) ([]model.Job, error) {
	var jobs []model.Job
	if err := c.api.get(ctx, "/jobs/getAll", &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// Get retrieves a single job by id
func (c *JobClient) Get(ctx context.Context, id int) (*model.Job, error) {
	var job model.Job
	if err := c.api.get(ctx, fmt.Sprintf("/jobs/%d", id), &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// Post creates a new job listing and returns it with its assigned id
func (c *JobClient) Post(ctx context.Context, create model.JobCreate) (*model.Job, error) {
	var job model.Job
	if err := c.api.do(ctx, "POST", "/jobs/post", create, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// Update replaces the job with the given id
func (c *JobClient) Update(ctx context.Context, id int, create model.JobCreate) (*model.Job, error) {
	var job model.Job
	if err := c.api.do(ctx, "PUT", fmt.Sprintf("/jobs/update/%d", id), create, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// Delete removes the job with the given id
func (c *JobClient) Delete(ctx context.Context, id int) error {
	return c.api.do(ctx, "DELETE", fmt.Sprintf("/jobs/delete/%d", id), nil, nil)
}
