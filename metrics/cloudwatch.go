package metrics

import (
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/cloudwatch"
	"github.com/aws/aws-sdk-go/service/cloudwatch/cloudwatchiface"

	"fest-registration/logger"
)

// CloudWatch pushes registration, login and deletion counts. Datums are
// queued and sent by one goroutine; when the queue is full they are dropped.
type CloudWatch struct {
	client    cloudwatchiface.CloudWatchAPI
	namespace string
	queue     chan *cloudwatch.MetricDatum
	done      chan struct{}

	mu     sync.RWMutex
	closed bool
}

var _ Recorder = (*CloudWatch)(nil)

// NewCloudWatchClient builds a client from the default AWS credential chain.
func NewCloudWatchClient(region string) (cloudwatchiface.CloudWatchAPI, error) {
	cfg := aws.NewConfig()
	if region != "" {
		cfg = cfg.WithRegion(region)
	}
	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, err
	}
	return cloudwatch.New(sess), nil
}

// NewCloudWatch starts the sender goroutine. Call Close to flush it.
func NewCloudWatch(client cloudwatchiface.CloudWatchAPI, namespace string) *CloudWatch {
	cw := &CloudWatch{
		client:    client,
		namespace: namespace,
		queue:     make(chan *cloudwatch.MetricDatum, 256),
		done:      make(chan struct{}),
	}
	go cw.run()
	return cw
}

// ObserveRequest is left to Prometheus.
func (cw *CloudWatch) ObserveRequest(string, string, int, time.Duration) {}

func (cw *CloudWatch) Registration(event string) {
	cw.enqueue("Registrations", 1, "EventName", event)
}

func (cw *CloudWatch) Login(result string) {
	cw.enqueue("AdminLogins", 1, "Result", result)
}

func (cw *CloudWatch) Deletion(kind string, n int64) {
	cw.enqueue("Deletions", float64(n), "Kind", kind)
}

// Close stops accepting datums and waits for the queue to drain.
func (cw *CloudWatch) Close() error {
	cw.mu.Lock()
	if !cw.closed {
		cw.closed = true
		close(cw.queue)
	}
	cw.mu.Unlock()
	<-cw.done
	return nil
}

// unknownDimension stands in for empty values, which CloudWatch rejects.
const unknownDimension = "unknown"

func (cw *CloudWatch) enqueue(name string, value float64, dimension, dimValue string) {
	if strings.TrimSpace(dimValue) == "" {
		dimValue = unknownDimension
	}
	datum := &cloudwatch.MetricDatum{
		MetricName: aws.String(name),
		Dimensions: []*cloudwatch.Dimension{
			{
				Name:  aws.String(dimension),
				Value: aws.String(dimValue),
			},
		},
		Timestamp: aws.Time(time.Now()),
		Value:     aws.Float64(value),
		Unit:      aws.String(cloudwatch.StandardUnitCount),
	}
	cw.mu.RLock()
	defer cw.mu.RUnlock()
	if cw.closed {
		return
	}
	select {
	case cw.queue <- datum:
	default:
		logger.Warn.Printf("[CloudWatch] queue full, dropping %s", name)
	}
}

func (cw *CloudWatch) run() {
	defer close(cw.done)
	for datum := range cw.queue {
		_, err := cw.client.PutMetricData(&cloudwatch.PutMetricDataInput{
			Namespace:  aws.String(cw.namespace),
			MetricData: []*cloudwatch.MetricDatum{datum},
		})
		if err != nil {
			logger.Error.Printf("[CloudWatch] metric %s failed: %v", aws.StringValue(datum.MetricName), err)
		}
	}
}
