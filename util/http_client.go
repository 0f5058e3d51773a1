// Copyright (c) tkc17.
package util

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// HttpClient is a client for the agent HTTP API.
type HttpClient struct {
	client  *http.Client
	baseUrl string
}

// NewHttpClient creates a client for the agent API at the base URL,
// e.g http://127.0.0.1:9041.
func NewHttpClient(timeout int, baseUrl string) *HttpClient {
	client := &http.Client{
		Timeout: time.Second * time.Duration(timeout),
	}
	return &HttpClient{client: client, baseUrl: baseUrl}
}

func (c *HttpClient) Do(
	ctx context.Context,
	method string,
	path string,
	headers map[string]string,
	queryParams map[string]string,
	data any,
) (*http.Response, error) {
	var req *http.Request
	requestUrl := fmt.Sprintf("%s%s", c.baseUrl, path)
	err := validate(method, data)
	if err != nil {
		FileLogger().Errorf(ctx, "Validation failed for the method: %s, err: %s", method, err.Error())
		return nil, err
	}
	//Add Query parameters to the request
	if queryParams != nil {
		first := true
		for k, v := range queryParams {
			if first {
				first = !first
				requestUrl = requestUrl + "?"
			} else {
				requestUrl = requestUrl + "&"
			}
			requestUrl = fmt.Sprintf("%s%s=%s", requestUrl, k, url.QueryEscape(v))
		}
	}
	FileLogger().Debugf(ctx, "Sending request to %s", requestUrl)
	if data == nil {
		req, err = http.NewRequestWithContext(ctx, method, requestUrl, nil)
	} else {
		var dataJson []byte
		dataJson, err = json.Marshal(data)
		if err != nil {
			return nil, err
		}
		req, err = http.NewRequestWithContext(ctx, method, requestUrl, bytes.NewBuffer(dataJson))
		if err == nil {
			req.Header.Set("Content-Type", "application/json")
		}
	}
	if err != nil {
		FileLogger().Errorf(
			ctx,
			"Error while creating new request url: %s, method: %s, err: %s",
			path,
			method,
			err.Error(),
		)
		return nil, err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	res, err := c.client.Do(req)
	if err != nil {
		FileLogger().Errorf(ctx, "Http url: %s method: %s call failed %s", path, method, err.Error())
		return nil, err
	}
	return res, nil
}

// FetchJSON sends a GET request and decodes the JSON response into out.
// The token, if non-empty, is sent as a bearer token.
func (c *HttpClient) FetchJSON(
	ctx context.Context,
	path string,
	token string,
	out any,
) error {
	headers := map[string]string{}
	if token != "" {
		headers["Authorization"] = "Bearer " + token
	}
	res, err := c.Do(ctx, http.MethodGet, path, headers, nil, nil)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return fmt.Errorf(
			"Request to %s failed with status %s - %s",
			path,
			res.Status,
			strings.TrimSpace(string(body)),
		)
	}
	return json.NewDecoder(res.Body).Decode(out)
}

// Validation to check if the given http method has correct
// signature.
func validate(method string, data any) error {
	if !isValidMethod(method) {
		return fmt.Errorf("Incorrect Method passed.")
	}
	if (method == http.MethodGet || method == http.MethodDelete) && data != nil {
		return fmt.Errorf("Incorrect request passed.")
	}
	return nil
}

// Validates the method passed.
func isValidMethod(method string) bool {
	switch method {
	case http.MethodGet,
		http.MethodPost,
		http.MethodDelete,
		http.MethodPut:
		return true
	}
	return false
}
