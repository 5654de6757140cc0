// Copyright 2026 The Taskdesk Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/taskdesk-foundation/taskdesk/lib/schema"
)

// Errors the command layer branches on when shaping output.
var (
	ErrUnauthenticated = errors.New("not logged in or session expired")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
)

// apiClient is a thin typed wrapper over the service's JSON API.
type apiClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func newAPIClient(server, token string) *apiClient {
	return &apiClient{
		baseURL: server,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// do performs one request. body and result may be nil. Failure
// responses become sentinel errors carrying the server's reason, so
// callers can both branch and print.
func (c *apiClient) do(ctx context.Context, method, path string, body, result any) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	request.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		request.Header.Set("Authorization", "Bearer "+c.token)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("contacting %s: %w", c.baseURL, err)
	}
	defer response.Body.Close()

	if response.StatusCode >= 400 {
		var failure schema.ErrorResponse
		json.NewDecoder(response.Body).Decode(&failure)
		message := failure.Error
		if message == "" {
			message = response.Status
		}

		switch response.StatusCode {
		case http.StatusUnauthorized:
			return fmt.Errorf("%w: %s", ErrUnauthenticated, message)
		case http.StatusForbidden:
			return fmt.Errorf("%w: %s", ErrForbidden, message)
		case http.StatusNotFound:
			return fmt.Errorf("%w: %s", ErrNotFound, message)
		default:
			return fmt.Errorf("server rejected request: %s", message)
		}
	}

	if result != nil {
		if err := json.NewDecoder(response.Body).Decode(result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

func (c *apiClient) Signup(ctx context.Context, request schema.SignupRequest) (*schema.User, error) {
	var user schema.User
	if err := c.do(ctx, http.MethodPost, "/api/signup", request, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *apiClient) Login(ctx context.Context, request schema.LoginRequest) (*schema.LoginResponse, error) {
	var login schema.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/login", request, &login); err != nil {
		return nil, err
	}
	return &login, nil
}

func (c *apiClient) ListTodos(ctx context.Context) ([]schema.TodoItem, error) {
	var items []schema.TodoItem
	if err := c.do(ctx, http.MethodGet, "/api/todos", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *apiClient) CreateTodo(ctx context.Context, request schema.CreateTodoRequest) (*schema.TodoItem, error) {
	var item schema.TodoItem
	if err := c.do(ctx, http.MethodPost, "/api/todos", request, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *apiClient) UpdateTodo(ctx context.Context, id string, request schema.UpdateTodoRequest) (*schema.TodoItem, error) {
	var item schema.TodoItem
	if err := c.do(ctx, http.MethodPut, "/api/todos/"+id, request, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *apiClient) DeleteTodo(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/todos/"+id, nil, nil)
}
