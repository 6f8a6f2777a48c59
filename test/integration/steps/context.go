// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/HACO8888/Financial-Management-System/config"
	"github.com/HACO8888/Financial-Management-System/internal/infra/dependency"
	"github.com/HACO8888/Financial-Management-System/internal/integration/cache"
	"github.com/HACO8888/Financial-Management-System/internal/integration/persistence/model"
	"github.com/HACO8888/Financial-Management-System/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

// environment is the application under test, shared by every scenario.
type environment struct {
	cfg      *config.Config
	db       *mock.Db
	redis    *mock.Redis
	api      *mock.ApiMock
	clock    *mock.Time
	injector *dependency.Injector
	server   *httptest.Server
}

var (
	envOnce sync.Once
	env     *environment
)

func setupEnvironment() {
	envOnce.Do(func() {
		gin.SetMode(gin.TestMode)

		e := &environment{
			db: mock.NewDb(map[string]any{
				"users":           &model.UserModel{},
				"categories":      &model.CategoryModel{},
				"transactions":    &model.TransactionModel{},
				"goals":           &model.GoalModel{},
				"monthly_reports": &model.MonthlyReportModel{},
				"email_queue":     &model.EmailQueueModel{},
			}),
			redis: mock.NewRedis(),
			api:   mock.NewApiServer(),
			clock: mock.NewTime(),
		}
		e.api.Start()

		cfg := config.Load()
		cfg.Server.Environment = "test"
		cfg.JWT.Secret = testJWTSecret
		cfg.Redis.URL = ""
		cfg.Messaging.AMQPURL = ""
		cfg.Storage.Bucket = ""
		cfg.AI.GeminiAPIKey = ""
		cfg.Email.ResendAPIKey = "re_test_key"
		cfg.Email.ResendBaseURL = e.api.GetUrl()
		cfg.Email.MonthlyReportEnabled = true
		cfg.Scheduler.Enabled = true
		e.cfg = cfg

		injector, err := dependency.NewInjector(context.Background(), cfg, e.db.DbConn, dependency.Externals{
			Cache: cache.NewRedisCache(e.redis.Client),
			Clock: e.clock,
		})
		if err != nil {
			panic(err)
		}
		e.injector = injector
		e.server = httptest.NewServer(injector.Router.Setup(cfg.Server.Environment))

		env = e
	})
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(setupEnvironment)

	ctx.AfterSuite(func() {
		if env == nil {
			return
		}
		env.server.Close()
		env.api.Close()
		_ = env.injector.Close()
	})
}

type testContext struct {
	uri           string
	headers       map[string]string
	client        *http.Client
	response      *response
	accessToken   string
	refreshToken  string
	currentUserID uuid.UUID
	saved         map[string]string
}

type response struct {
	status int
	header http.Header
	body   any
	raw    []byte
}

func (t *testContext) before() error {
	setupEnvironment()

	t.uri = env.server.URL
	t.client = &http.Client{Timeout: 10 * time.Second}
	t.headers = map[string]string{}
	t.response = nil
	t.accessToken = ""
	t.refreshToken = ""
	t.currentUserID = uuid.Nil
	t.saved = map[string]string{}

	env.clock.Reset()
	env.api.Reset()
	env.api.SetResponse(http.MethodPost, "/emails", http.StatusOK, map[string]any{"id": uuid.NewString()})
	if err := env.redis.Clear(); err != nil {
		return err
	}
	return env.db.ClearDB()
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	registerSteps(ctx, test)
}

// registerSteps binds every step pattern. Steps are registered without a keyword so
// the same sentence works after Given, When, Then or And.
func registerSteps(ctx *godog.ScenarioContext, test *testContext) {
	// Background steps
	ctx.Step(`^the API server is running$`, test.theAPIServerIsRunning)
	ctx.Step(`^the current date is "([^"]*)"$`, test.theCurrentDateIs)

	// User setup steps
	ctx.Step(`^I am registered as "([^"]*)" with password "([^"]*)"$`, test.iAmRegisteredAs)
	ctx.Step(`^I am logged in as "([^"]*)" with password "([^"]*)"$`, test.iAmLoggedInAs)

	// Ledger setup steps
	ctx.Step(`^I record an? "(income|expense)" of "([^"]*)" in "([^"]*)" on "([^"]*)"$`, test.iRecordATransaction)

	// Header steps
	ctx.Step(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Step(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)
	ctx.Step(`^I save the response field "([^"]*)" as "([^"]*)"$`, test.iSaveTheResponseFieldAs)

	// Background job steps
	ctx.Step(`^the "([^"]*)" job runs$`, test.theJobRuns)
	ctx.Step(`^the email worker runs$`, test.theEmailWorkerRuns)

	// Response assertion steps
	ctx.Step(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Step(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Step(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Step(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Step(`^the response field "([^"]*)" should have (\d+) items?$`, test.theResponseFieldShouldHaveItems)
	ctx.Step(`^the response header "([^"]*)" should contain "([^"]*)"$`, test.theResponseHeaderShouldContain)

	// Database assertion steps
	ctx.Step(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Step(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)

	// Side effect assertion steps
	ctx.Step(`^the cache should hold (\d+) entries for the current user$`, test.theCacheShouldHoldEntries)
	ctx.Step(`^the email API should have received (\d+) emails?$`, test.theEmailAPIShouldHaveReceived)
	ctx.Step(`^the email API request (\d+) field "([^"]*)" should contain "([^"]*)"$`, test.theEmailAPIRequestFieldShouldContain)
}
