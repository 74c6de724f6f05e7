package api

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/pkg/errors"

	"PairTalk/client/internal/models"
)

type SessionResponse struct {
	User        models.User `json:"user"`
	AccessToken string      `json:"access_token"`
}

type chatsResponse struct {
	Chats []models.Chat `json:"chats"`
}

type chatResponse struct {
	Chat models.Chat `json:"chat"`
}

type messagesResponse struct {
	Messages []models.Message `json:"messages"`
}

type messageResponse struct {
	Message models.Message `json:"message"`
}

type userResponse struct {
	User models.User `json:"user"`
}

type successResponse struct {
	Success bool `json:"success"`
}

func (c *Client) SignIn(ctx context.Context, email, password string) (*SessionResponse, error) {
	var resp SessionResponse
	payload := map[string]string{"email": email, "password": password}
	if err := c.doJSON(ctx, http.MethodPost, "accounts/signin", payload, false, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) SignUp(ctx context.Context, name, email, password string) (*SessionResponse, error) {
	var resp SessionResponse
	payload := map[string]string{"name": name, "email": email, "password": password}
	if err := c.doJSON(ctx, http.MethodPost, "accounts/signup", payload, false, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ProfileForm carries the multipart fields of a profile update. Empty fields
// are omitted from the form.
type ProfileForm struct {
	Name     string
	Email    string
	Password string
	Avatar   *FileUpload
}

func (c *Client) UpdateUser(ctx context.Context, form ProfileForm) (*models.User, error) {
	var resp userResponse
	err := c.doMultipart(ctx, http.MethodPut, "accounts/me", func(w *multipart.Writer) error {
		if form.Name != "" {
			if err := w.WriteField("name", form.Name); err != nil {
				return errors.Wrap(err, "writing name field")
			}
		}
		if form.Email != "" {
			if err := w.WriteField("email", form.Email); err != nil {
				return errors.Wrap(err, "writing email field")
			}
		}
		if form.Password != "" {
			if err := w.WriteField("password", form.Password); err != nil {
				return errors.Wrap(err, "writing password field")
			}
		}
		if form.Avatar != nil {
			return writeFilePart(w, "avatar", form.Avatar)
		}
		return nil
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.User, nil
}

func (c *Client) GetChats(ctx context.Context) ([]models.Chat, error) {
	var resp chatsResponse
	if err := c.doJSON(ctx, http.MethodGet, "chats/", nil, true, &resp); err != nil {
		return nil, err
	}
	return resp.Chats, nil
}

func (c *Client) CreateChat(ctx context.Context, email string) (*models.Chat, error) {
	var resp chatResponse
	payload := map[string]string{"email": email}
	if err := c.doJSON(ctx, http.MethodPost, "chats/", payload, true, &resp); err != nil {
		return nil, err
	}
	return &resp.Chat, nil
}

func (c *Client) DeleteChat(ctx context.Context, chatID int) error {
	var resp successResponse
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("chats/%d", chatID), nil, true, &resp)
}

func (c *Client) GetMessages(ctx context.Context, chatID int) ([]models.Message, error) {
	var resp messagesResponse
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("chats/%d/messages", chatID), nil, true, &resp); err != nil {
		return nil, err
	}
	return resp.Messages, nil
}

// MessageForm carries the optional parts of an outbound message.
type MessageForm struct {
	Body  string
	File  *FileUpload
	Audio *FileUpload
}

func (c *Client) CreateMessage(ctx context.Context, chatID int, form MessageForm) (*models.Message, error) {
	var resp messageResponse
	err := c.doMultipart(ctx, http.MethodPost, fmt.Sprintf("chats/%d/messages", chatID), func(w *multipart.Writer) error {
		if form.Body != "" {
			if err := w.WriteField("body", form.Body); err != nil {
				return errors.Wrap(err, "writing body field")
			}
		}
		if form.File != nil {
			if err := writeFilePart(w, "file", form.File); err != nil {
				return err
			}
		}
		if form.Audio != nil {
			return writeFilePart(w, "audio", form.Audio)
		}
		return nil
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.Message, nil
}

func (c *Client) DeleteMessage(ctx context.Context, chatID, messageID int) error {
	var resp successResponse
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("chats/%d/messages/%d", chatID, messageID), nil, true, &resp)
}
