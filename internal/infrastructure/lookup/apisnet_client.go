// Package lookup consulta RUC (SUNAT) y DNI (RENIEC) a través de un proveedor
// HTTP tipo apis.net.pe y cachea las respuestas.
package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/contaperu/contaperu-api/internal/application/ports"
	"github.com/contaperu/contaperu-api/internal/domain"
	"github.com/contaperu/contaperu-api/internal/domain/entity"
)

var _ ports.TaxpayerLookup = (*APIClient)(nil)

// APIClient cliente del proveedor de consultas.
type APIClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewAPIClient construye el cliente. baseURL ej. https://api.apis.net.pe/v2
func NewAPIClient(baseURL, token string) *APIClient {
	return &APIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type rucResponse struct {
	RazonSocial     string `json:"razonSocial"`
	NumeroDocumento string `json:"numeroDocumento"`
	Estado          string `json:"estado"`
	Condicion       string `json:"condicion"`
	Direccion       string `json:"direccion"`
	Ubigeo          string `json:"ubigeo"`
}

type dniResponse struct {
	Nombres         string `json:"nombres"`
	ApellidoPaterno string `json:"apellidoPaterno"`
	ApellidoMaterno string `json:"apellidoMaterno"`
	NumeroDocumento string `json:"numeroDocumento"`
}

// LookupRUC consulta el padrón de contribuyentes.
func (c *APIClient) LookupRUC(ctx context.Context, ruc string) (*entity.TaxpayerInfo, error) {
	var r rucResponse
	if err := c.get(ctx, "/sunat/ruc", ruc, &r); err != nil {
		return nil, err
	}
	return &entity.TaxpayerInfo{
		RUC:         ruc,
		RazonSocial: r.RazonSocial,
		State:       r.Estado,
		Condition:   r.Condicion,
		Address:     r.Direccion,
		Ubigeo:      r.Ubigeo,
	}, nil
}

// LookupDNI consulta RENIEC.
func (c *APIClient) LookupDNI(ctx context.Context, dni string) (*entity.PersonInfo, error) {
	var r dniResponse
	if err := c.get(ctx, "/reniec/dni", dni, &r); err != nil {
		return nil, err
	}
	full := strings.TrimSpace(strings.Join([]string{r.ApellidoPaterno, r.ApellidoMaterno, r.Nombres}, " "))
	return &entity.PersonInfo{
		DNI:          dni,
		Names:        r.Nombres,
		PaternalName: r.ApellidoPaterno,
		MaternalName: r.ApellidoMaterno,
		FullName:     strings.Join(strings.Fields(full), " "),
	}, nil
}

func (c *APIClient) get(ctx context.Context, path, numero string, out any) error {
	if c.baseURL == "" {
		return fmt.Errorf("lookup: %w", domain.ErrNotConfigured)
	}
	u := c.baseURL + path + "?numero=" + url.QueryEscape(numero)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("lookup: crear request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("lookup: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return fmt.Errorf("lookup: leer respuesta: %w", err)
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrNotFound
	case resp.StatusCode == http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: número rechazado por el proveedor", domain.ErrInvalidInput)
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("lookup: proveedor HTTP %d: %s", resp.StatusCode, truncate(string(body), 200))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("lookup: deserializar respuesta: %w", err)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}
