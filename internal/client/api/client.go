package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/clipers/clipers-cli/internal/client/storage"
)

// ClientAPI defines the transport interface consumed by the stores.
// Every method injects the bearer token from durable storage and
// transparently recovers from token expiry (single 401 retry).
type ClientAPI interface {
	// Get performs GET and decodes the JSON response into result (may be nil)
	Get(ctx context.Context, path string, result any) error

	// Post performs POST with a JSON body (may be nil)
	Post(ctx context.Context, path string, body, result any) error

	// Put performs PUT with a JSON body
	Put(ctx context.Context, path string, body, result any) error

	// Delete performs DELETE, discarding any response body
	Delete(ctx context.Context, path string) error

	// Upload posts multipart content, reporting integer upload progress
	// (0-100, monotonically non-decreasing) through onProgress
	Upload(ctx context.Context, path string, form UploadForm, onProgress func(int), result any) error
}

// Client представляет HTTP клиент для взаимодействия с сервером Clipers.
// На каждый исходящий запрос подставляется bearer token из хранилища;
// ответ 401 прозрачно восстанавливается через /auth/refresh.
type Client struct {
	httpClient    *http.Client
	baseURL       string
	tokens        storage.TokenStorage
	onAuthExpired func()
	logger        *slog.Logger
}

// Compile-time check that Client implements ClientAPI
var _ ClientAPI = (*Client)(nil)

// NewClient создает новый API клиент
func NewClient(baseURL string, tokens storage.TokenStorage, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		tokens:  tokens,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: timeout,
			// Настройка обработки редиректов
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовки Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
}

// SetAuthExpiredHandler задает обработчик невосстановимого истечения сессии.
// Это клиентский эквивалент принудительного редиректа на страницу логина:
// вызывается после неудачного refresh, когда оба токена уже удалены.
func (c *Client) SetAuthExpiredHandler(fn func()) {
	c.onAuthExpired = fn
}

// Get выполняет GET запрос
func (c *Client) Get(ctx context.Context, path string, result any) error {
	return c.doRequest(ctx, http.MethodGet, path, nil, result)
}

// Post выполняет POST запрос с JSON телом
func (c *Client) Post(ctx context.Context, path string, body, result any) error {
	return c.doRequest(ctx, http.MethodPost, path, body, result)
}

// Put выполняет PUT запрос с JSON телом
func (c *Client) Put(ctx context.Context, path string, body, result any) error {
	return c.doRequest(ctx, http.MethodPut, path, body, result)
}

// Delete выполняет DELETE запрос
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.doRequest(ctx, http.MethodDelete, path, nil, nil)
}

// UploadForm описывает multipart форму для загрузки файла
type UploadForm struct {
	Fields    map[string]string // обычные текстовые поля
	FileField string            // имя файлового поля (например, "video")
	FileName  string            // имя файла
	File      []byte            // содержимое файла
}

// Upload отправляет multipart форму, сообщая прогресс передачи тела
// через onProgress целыми процентами 0-100. Прогресс монотонно
// неубывающий, в том числе при повторе запроса после refresh.
func (c *Client) Upload(ctx context.Context, path string, form UploadForm, onProgress func(int), result any) error {
	body, contentType, err := buildMultipart(form)
	if err != nil {
		return fmt.Errorf("failed to build multipart form: %w", err)
	}

	tracker := &progressTracker{onProgress: onProgress}

	status, respBody, err := c.send(ctx, http.MethodPost, path, body, contentType, tracker)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	// Восстановление после 401: ровно один refresh и один повтор
	if status == http.StatusUnauthorized {
		status, respBody, err = c.recoverAndRetry(ctx, http.MethodPost, path, body, contentType, tracker, respBody)
		if err != nil {
			return err
		}
	}

	return decodeResponse(status, respBody, result)
}

// doRequest выполняет HTTP запрос с JSON телом и восстановлением после 401
func (c *Client) doRequest(ctx context.Context, method, path string, body, result any) error {
	var bodyBytes []byte
	contentType := ""
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyBytes = jsonData
		contentType = "application/json"
	}

	status, respBody, err := c.send(ctx, method, path, bodyBytes, contentType, nil)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	// Восстановление после 401: ровно один refresh и один повтор.
	// Повторный 401 после повтора уже не восстанавливается — это
	// структурная защита от бесконечного цикла.
	if status == http.StatusUnauthorized {
		status, respBody, err = c.recoverAndRetry(ctx, method, path, bodyBytes, contentType, nil, respBody)
		if err != nil {
			return err
		}
	}

	return decodeResponse(status, respBody, result)
}

// recoverAndRetry пытается обновить access token и повторить запрос один раз.
// Если refresh не удался, оба токена удаляются, вызывается обработчик
// истечения сессии, а исходный 401 возвращается вызывающему.
func (c *Client) recoverAndRetry(
	ctx context.Context,
	method, path string,
	body []byte,
	contentType string,
	tracker *progressTracker,
	originalBody []byte,
) (int, []byte, error) {
	if err := c.refreshAccessToken(ctx); err != nil {
		c.logger.Warn("token refresh failed, session expired", "error", err)
		c.expireAuth(ctx)
		return 0, nil, decodeError(http.StatusUnauthorized, originalBody)
	}

	status, respBody, err := c.send(ctx, method, path, body, contentType, tracker)
	if err != nil {
		return 0, nil, fmt.Errorf("retry request failed: %w", err)
	}
	return status, respBody, nil
}

// send выполняет один HTTP запрос с текущим access token
func (c *Client) send(
	ctx context.Context,
	method, path string,
	body []byte,
	contentType string,
	tracker *progressTracker,
) (int, []byte, error) {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
		if tracker != nil {
			bodyReader = &progressReader{
				r:       bodyReader,
				total:   int64(len(body)),
				tracker: tracker,
			}
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.ContentLength = int64(len(body))
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("X-Request-Id", uuid.New().String())

	// Подставляем bearer token, если он сохранен
	if tokens, err := c.tokens.GetTokens(ctx); err == nil && tokens.AccessToken != "" {
		req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	c.logger.Debug("request completed",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", req.Header.Get("X-Request-Id"))

	return resp.StatusCode, respBody, nil
}

// refreshAccessToken обменивает refresh token на новый access token.
// Конкурентные 401 могут независимо вызвать refresh — дедупликация
// не требуется, запись токена идемпотентна (last-write-wins).
func (c *Client) refreshAccessToken(ctx context.Context) error {
	tokens, err := c.tokens.GetTokens(ctx)
	if err != nil {
		return fmt.Errorf("no stored tokens: %w", err)
	}
	if tokens.RefreshToken == "" {
		return fmt.Errorf("no refresh token available")
	}

	reqBody, err := json.Marshal(map[string]string{"refreshToken": tokens.RefreshToken})
	if err != nil {
		return fmt.Errorf("failed to marshal refresh request: %w", err)
	}

	// Запрос к refresh endpoint идет напрямую, минуя doRequest:
	// на него самого протокол восстановления не распространяется
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/refresh", bytes.NewReader(reqBody))
	if err != nil {
		return fmt.Errorf("failed to create refresh request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("refresh request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read refresh response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp.StatusCode, respBody)
	}

	var refreshResp struct {
		AccessToken string `json:"accessToken"`
	}
	if err := json.Unmarshal(respBody, &refreshResp); err != nil {
		return fmt.Errorf("failed to decode refresh response: %w", err)
	}
	if refreshResp.AccessToken == "" {
		return fmt.Errorf("refresh response contains no access token")
	}

	if err := c.tokens.SaveAccessToken(ctx, refreshResp.AccessToken); err != nil {
		return fmt.Errorf("failed to save access token: %w", err)
	}

	return nil
}

// expireAuth удаляет оба токена и уведомляет приложение об истечении сессии
func (c *Client) expireAuth(ctx context.Context) {
	if err := c.tokens.DeleteTokens(ctx); err != nil {
		c.logger.Warn("failed to delete tokens", "error", err)
	}
	if c.onAuthExpired != nil {
		c.onAuthExpired()
	}
}

// decodeResponse проверяет статус и декодирует успешный JSON ответ
func decodeResponse(status int, body []byte, result any) error {
	if status < 200 || status >= 300 {
		return decodeError(status, body)
	}
	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// decodeError строит *Error из тела ответа сервера.
// Если тело не является стандартным конвертом ошибки,
// используется fallback сообщение.
func decodeError(status int, body []byte) error {
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil {
		msg := errResp.Message
		if msg == "" {
			msg = errResp.Error
		}
		if msg != "" {
			return &Error{StatusCode: status, Message: msg}
		}
	}
	return &Error{StatusCode: status, Message: fmt.Sprintf("request failed with status %d", status)}
}

// buildMultipart собирает multipart тело формы в память.
// Буферизация нужна, чтобы тело можно было отправить повторно
// при восстановлении после 401.
func buildMultipart(form UploadForm) ([]byte, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for key, value := range form.Fields {
		if err := writer.WriteField(key, value); err != nil {
			return nil, "", fmt.Errorf("failed to write field %q: %w", key, err)
		}
	}

	part, err := writer.CreateFormFile(form.FileField, form.FileName)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create file part: %w", err)
	}
	if _, err := part.Write(form.File); err != nil {
		return nil, "", fmt.Errorf("failed to write file content: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart writer: %w", err)
	}

	return buf.Bytes(), writer.FormDataContentType(), nil
}

// progressTracker хранит последний сообщенный процент.
// Общий на все попытки одного Upload, чтобы прогресс
// не откатывался назад при повторе запроса.
type progressTracker struct {
	onProgress func(int)
	last       int
}

func (t *progressTracker) report(pct int) {
	if t.onProgress == nil {
		return
	}
	if pct > 100 {
		pct = 100
	}
	if pct > t.last {
		t.last = pct
		t.onProgress(pct)
	}
}

// progressReader считает переданные байты тела запроса
type progressReader struct {
	r       io.Reader
	total   int64
	read    int64
	tracker *progressTracker
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 && p.total > 0 {
		p.read += int64(n)
		p.tracker.report(int(p.read * 100 / p.total))
	}
	return n, err
}
