package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/HACO8888/Financial-Management-System/internal/domain/valueobject"
	"github.com/HACO8888/Financial-Management-System/internal/integration/persistence/model"
)

func (t *testContext) theAPIServerIsRunning() error {
	resp, err := t.client.Get(t.uri + "/health")
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned %d", resp.StatusCode)
	}
	return nil
}

// theCurrentDateIs moves the application clock to noon of date.
func (t *testContext) theCurrentDateIs(date string) error {
	day, err := valueobject.ParseDate(date)
	if err != nil {
		return err
	}
	loc := env.cfg.Scheduler.Location()
	env.clock.SetCurrentTime(time.Date(day.Year(), day.Month(), day.Day(), 12, 0, 0, 0, loc))
	return nil
}

func (t *testContext) iAmRegisteredAs(username, password string) error {
	body := fmt.Sprintf(`{"username":%q,"email":%q,"password":%q,"confirm_password":%q}`,
		username, username+"@example.com", password, password)
	if err := t.executeRequest(http.MethodPost, "/api/v1/auth/register", []byte(body)); err != nil {
		return err
	}
	if err := t.theResponseStatusShouldBe(http.StatusCreated); err != nil {
		return err
	}
	return t.captureTokens()
}

func (t *testContext) iAmLoggedInAs(login, password string) error {
	t.accessToken = ""
	body := fmt.Sprintf(`{"login":%q,"password":%q}`, login, password)
	if err := t.executeRequest(http.MethodPost, "/api/v1/auth/login", []byte(body)); err != nil {
		return err
	}
	if err := t.theResponseStatusShouldBe(http.StatusOK); err != nil {
		return err
	}
	return t.captureTokens()
}

func (t *testContext) captureTokens() error {
	body, ok := t.response.body.(map[string]any)
	if !ok {
		return fmt.Errorf("auth response is not a JSON object: %v", t.response.body)
	}
	t.accessToken, _ = body["access_token"].(string)
	t.refreshToken, _ = body["refresh_token"].(string)

	id, _ := getFieldValue(body, "user.id").(string)
	userID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("auth response has no user id: %v", body)
	}
	t.currentUserID = userID
	return nil
}

// iRecordATransaction posts a transaction in one of the current user's categories.
func (t *testContext) iRecordATransaction(kind, amount, category, date string) error {
	var c model.CategoryModel
	err := env.db.DbConn.
		Where("user_id = ? AND name = ? AND type = ?", t.currentUserID, category, kind).
		First(&c).Error
	if err != nil {
		return fmt.Errorf("%s category %q not found: %w", kind, category, err)
	}

	body := fmt.Sprintf(`{"category_id":%q,"type":%q,"amount":%q,"date":%q}`, c.ID, kind, amount, date)
	if err := t.executeRequest(http.MethodPost, "/api/v1/transactions", []byte(body)); err != nil {
		return err
	}
	return t.theResponseStatusShouldBe(http.StatusCreated)
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	t.accessToken = "" // Clear access token to simulate unauthenticated request
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = t.replacePlaceholders(value)
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replacePlaceholders(path), nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, t.replacePlaceholders(path), payload)
}

func (t *testContext) iSaveTheResponseFieldAs(field, name string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	value := getFieldValue(t.response.body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, t.response.body)
	}
	t.saved[name] = fmt.Sprintf("%v", value)
	return nil
}

// replacePlaceholders expands {{access_token}}, {{refresh_token}} and saved fields.
func (t *testContext) replacePlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{{refresh_token}}", t.refreshToken)
	content = strings.ReplaceAll(content, "{{access_token}}", t.accessToken)
	for name, value := range t.saved {
		content = strings.ReplaceAll(content, "{{"+name+"}}", value)
	}
	return content
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, t.uri+path, body)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}

	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{
		status: resp.StatusCode,
		header: resp.Header,
		raw:    bodyBytes,
	}

	var decoded any
	if err := json.Unmarshal(bodyBytes, &decoded); err != nil {
		t.response.body = string(bodyBytes)
	} else {
		t.response.body = decoded
	}
	return nil
}

func (t *testContext) theJobRuns(name string) error {
	if env.injector.Scheduler == nil {
		return errors.New("scheduler is disabled")
	}
	return env.injector.Scheduler.RunNow(name)
}

func (t *testContext) theEmailWorkerRuns() error {
	env.injector.EmailWorker.ProcessNow(context.Background())
	return nil
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if !json.Valid(t.response.raw) {
		return fmt.Errorf("response is not JSON: %s", t.response.raw)
	}
	return nil
}

func (t *testContext) theResponseShouldContain(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	body, ok := t.response.body.(map[string]any)
	if !ok {
		return fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}

	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %v", field, body)
	}
	return nil
}

// theResponseFieldShouldBe compares decimals numerically so "150" matches "150.00".
func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	value := getFieldValue(t.response.body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, t.response.body)
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue == expectedValue {
		return nil
	}
	expected, errExpected := decimal.NewFromString(expectedValue)
	actual, errActual := decimal.NewFromString(actualValue)
	if errExpected == nil && errActual == nil && expected.Equal(actual) {
		return nil
	}
	return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	if getFieldValue(t.response.body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldHaveItems(field string, count int) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	items, ok := getFieldValue(t.response.body, field).([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not a list: %v", field, t.response.body)
	}
	if len(items) != count {
		return fmt.Errorf("field '%s' expected %d items, got %d", field, count, len(items))
	}
	return nil
}

func (t *testContext) theResponseHeaderShouldContain(header, expected string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if actual := t.response.header.Get(header); !strings.Contains(actual, expected) {
		return fmt.Errorf("header '%s' expected to contain '%s', got '%s'", header, expected, actual)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	return t.countRows(quantity, table, nil)
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(t.replacePlaceholders(content.Content)), &criteria); err != nil {
		return err
	}
	return t.countRows(quantity, table, criteria)
}

func (t *testContext) countRows(quantity int, table string, criteria map[string]any) error {
	entity, ok := env.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	entityType := reflect.TypeOf(entity).Elem()
	entitySlicePtr := reflect.New(reflect.SliceOf(entityType))

	query := env.db.DbConn.Unscoped()
	for key, value := range criteria {
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}

	result := query.Find(entitySlicePtr.Interface())
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}

	count := entitySlicePtr.Elem().Len()
	if count != quantity {
		return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
	}
	return nil
}

func (t *testContext) theCacheShouldHoldEntries(count int) error {
	keys, err := env.redis.Keys("fms:user:" + t.currentUserID.String() + ":*")
	if err != nil {
		return err
	}
	if len(keys) != count {
		return fmt.Errorf("expected %d cache entries, got %d: %v", count, len(keys), keys)
	}
	return nil
}

func (t *testContext) theEmailAPIShouldHaveReceived(count int) error {
	requests := env.api.Requests(http.MethodPost, "/emails")
	if len(requests) != count {
		return fmt.Errorf("expected %d emails, got %d", count, len(requests))
	}
	return nil
}

func (t *testContext) theEmailAPIRequestFieldShouldContain(index int, field, expected string) error {
	requests := env.api.Requests(http.MethodPost, "/emails")
	if index < 1 || index > len(requests) {
		return fmt.Errorf("email request %d not found, got %d", index, len(requests))
	}
	value := fmt.Sprintf("%v", getFieldValue(requests[index-1].Body, field))
	if !strings.Contains(value, expected) {
		return fmt.Errorf("email field '%s' expected to contain '%s', got '%s'", field, expected, value)
	}
	return nil
}

func getFieldValue(object any, dotSeparatedField string) any {
	if object == nil {
		return nil
	}

	fields := strings.Split(dotSeparatedField, ".")
	field := object

	for _, currentField := range fields {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			if arr, ok := field.([]any); ok && i < len(arr) {
				field = arr[i]
			} else {
				return nil
			}
		} else {
			if m, ok := field.(map[string]any); ok {
				field = m[currentField]
			} else {
				return nil
			}
		}
	}

	return field
}
