package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"samedayramps-backend/internal/logger"
)

// eSignatures.io has no Go SDK; its contract API is a single JSON POST.
type eSignaturesAgreementService struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	templateID string
}

func NewESignaturesAgreementService(apiKey, baseURL, templateID string) AgreementService {
	return &eSignaturesAgreementService{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		apiKey:     apiKey,
		baseURL:    baseURL,
		templateID: templateID,
	}
}

type esignSignerPayload struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Mobile string `json:"mobile,omitempty"`
}

type esignFieldPayload struct {
	APIKey string `json:"api_key"`
	Value  string `json:"value"`
}

type esignContractPayload struct {
	TemplateID  string               `json:"template_id"`
	Signers     []esignSignerPayload `json:"signers"`
	PlaceFields []esignFieldPayload  `json:"placeholder_fields"`
}

type esignContractResponse struct {
	Status string `json:"status"`
	Data   struct {
		Contract struct {
			ID      string `json:"id"`
			Signers []struct {
				SignPageURL string `json:"sign_page_url"`
			} `json:"signers"`
		} `json:"contract"`
	} `json:"data"`
}

func (s *eSignaturesAgreementService) CreateAgreement(ctx context.Context, req AgreementRequest) (string, error) {
	payload := esignContractPayload{
		TemplateID: s.templateID,
		Signers: []esignSignerPayload{
			{Name: req.SignerName, Email: req.SignerEmail},
		},
	}
	for key, value := range req.Fields {
		payload.PlaceFields = append(payload.PlaceFields, esignFieldPayload{APIKey: key, Value: value})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode contract payload: %w", err)
	}

	url := fmt.Sprintf("%s/contracts?token=%s", s.baseURL, s.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build contract request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	logger.ExternalServiceCall("esignatures", "create_contract", "signer", req.SignerEmail)
	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		logger.ExternalServiceResult("esignatures", "create_contract", err)
		return "", fmt.Errorf("contract request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read contract response: %w", err)
	}
	if resp.StatusCode >= 400 {
		err := fmt.Errorf("esignatures error: status %d, body: %s", resp.StatusCode, respBody)
		logger.ExternalServiceResult("esignatures", "create_contract", err)
		return "", err
	}

	var decoded esignContractResponse
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return "", fmt.Errorf("failed to decode contract response: %w", err)
	}
	signers := decoded.Data.Contract.Signers
	if len(signers) == 0 || signers[0].SignPageURL == "" {
		err := fmt.Errorf("contract response missing signer sign page url")
		logger.ExternalServiceResult("esignatures", "create_contract", err)
		return "", err
	}

	logger.ExternalServiceResult("esignatures", "create_contract", nil, "contract_id", decoded.Data.Contract.ID)
	return signers[0].SignPageURL, nil
}
