package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Mohmmed-Zaid/jobluu-client/internal/model"
)

// ProfileClient handles communication with the profile endpoints
type ProfileClient struct {
	api    *Client
	logger *zap.Logger
}

// NewProfileClient creates a new profile client
func NewProfileClient(api *Client, logger *zap.Logger) *ProfileClient {
	return &ProfileClient{api: api, logger: logger}
}

// profileDTO owns the backend's field spellings for the profile resource.
// The backend spells the experience field "exprience"; internal types never
// see that name.
type profileDTO struct {
	ID             int                   `json:"id"`
	Name           string                `json:"name"`
	Title          string                `json:"title"`
	Location       string                `json:"location"`
	Exprience      string                `json:"exprience"`
	Email          string                `json:"email"`
	Phone          string                `json:"phone"`
	Company        string                `json:"company"`
	About          string                `json:"about"`
	Skills         []string              `json:"skills"`
	Picture        string                `json:"picture,omitempty"`
	Experiences    []model.Experience    `json:"experiences"`
	Certifications []model.Certification `json:"certifications"`
	Stats          model.ProfileStats    `json:"stats"`
}

func (d profileDTO) toModel() model.Profile {
	return model.Profile{
		ID:             d.ID,
		Name:           d.Name,
		Title:          d.Title,
		Location:       d.Location,
		Experience:     d.Exprience,
		Email:          d.Email,
		Phone:          d.Phone,
		Company:        d.Company,
		About:          d.About,
		Skills:         d.Skills,
		AvatarURL:      d.Picture,
		Experiences:    d.Experiences,
		Certifications: d.Certifications,
		Stats:          d.Stats,
	}
}

func profileFromModel(p model.Profile) profileDTO {
	return profileDTO{
		ID:             p.ID,
		Name:           p.Name,
		Title:          p.Title,
		Location:       p.Location,
		Exprience:      p.Experience,
		Email:          p.Email,
		Phone:          p.Phone,
		Company:        p.Company,
		About:          p.About,
		Skills:         p.Skills,
		Picture:        p.AvatarURL,
		Experiences:    p.Experiences,
		Certifications: p.Certifications,
		Stats:          p.Stats,
	}
}

// Get retrieves a profile by user id
func (c *ProfileClient) Get(ctx context.Context, id int) (*model.Profile, error) {
	var dto profileDTO
	if err := c.api.get(ctx, fmt.Sprintf("/api/profiles/get/%d", id), &dto); err != nil {
		return nil, err
	}
	p := dto.toModel()
	return &p, nil
}

// Update replaces the profile with the given id
func (c *ProfileClient) Update(ctx context.Context, id int, p model.Profile) (*model.Profile, error) {
	var dto profileDTO
	if err := c.api.do(ctx, "PUT", fmt.Sprintf("/api/profiles/update/%d", id), profileFromModel(p), &dto); err != nil {
		return nil, err
	}
	updated := dto.toModel()
	return &updated, nil
}

// Create creates a new profile
func (c *ProfileClient) Create(ctx context.Context, p model.Profile) (*model.Profile, error) {
	var dto profileDTO
	if err := c.api.do(ctx, "POST", "/api/profiles/create", profileFromModel(p), &dto); err != nil {
		return nil, err
	}
	created := dto.toModel()
	return &created, nil
}

// UploadAvatar posts an image file for the profile and returns its URL
func (c *ProfileClient) UploadAvatar(ctx context.Context, id int, path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open avatar file: %w", err)
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("failed to read avatar file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	var resp struct {
		URL string `json:"url"`
	}
	endpoint := fmt.Sprintf("/api/profiles/upload-avatar/%d", id)
	if err := c.api.doMultipart(ctx, endpoint, writer.FormDataContentType(), &buf, &resp); err != nil {
		return "", err
	}
	return resp.URL, nil
}
