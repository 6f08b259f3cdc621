// Package export flattens the order history into parquet, written to
// a local file or an S3 object depending on configuration.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/habeeb-code-cell/Habeeb-s-kitchen/internal/models"
)

// OrderRecord is one flattened parquet row per placed order.
type OrderRecord struct {
	OrderID           string `parquet:"name=order_id, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	Status            string `parquet:"name=status, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	Total             int64  `parquet:"name=total, type=INT64"`
	EstimatedDelivery string `parquet:"name=estimated_delivery, type=BYTE_ARRAY, convertedtype=UTF8"`
	PaymentMethod     string `parquet:"name=payment_method, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	CustomerName      string `parquet:"name=customer_name, type=BYTE_ARRAY, convertedtype=UTF8"`
	CustomerCity      string `parquet:"name=customer_city, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	ItemCount         int64  `parquet:"name=item_count, type=INT64"`
	ItemNames         string `parquet:"name=item_names, type=BYTE_ARRAY, convertedtype=UTF8"`
	CreatedAt         int64  `parquet:"name=created_at, type=INT64, convertedtype=TIMESTAMP_MILLIS"`
}

func flattenOrder(order models.Order) OrderRecord {
	names := make([]string, 0, len(order.Items))
	count := 0
	for _, item := range order.Items {
		names = append(names, item.MenuItem.Name)
		count += item.Quantity
	}
	return OrderRecord{
		OrderID:           order.ID,
		Status:            order.Status,
		Total:             int64(order.Total),
		EstimatedDelivery: order.EstimatedDelivery,
		PaymentMethod:     order.PaymentMethod,
		CustomerName:      order.CustomerInfo.Name,
		CustomerCity:      order.CustomerInfo.City,
		ItemCount:         int64(count),
		ItemNames:         strings.Join(names, ", "),
		CreatedAt:         order.CreatedAt.UnixMilli(),
	}
}

// Exporter writes order history snapshots. With an S3 bucket
// configured it uploads; otherwise it writes under the export dir.
type Exporter struct {
	cfg *models.Config
}

func New(cfg *models.Config) *Exporter {
	return &Exporter{cfg: cfg}
}

// Export writes all orders as one parquet object and returns where it
// ended up.
func (e *Exporter) Export(ctx context.Context, orders []models.Order) (string, error) {
	name := fmt.Sprintf("orders_%s.parquet", time.Now().Format("20060102_150405"))

	if e.cfg.S3Bucket != "" {
		objectPath := filepath.Join("exports", name)
		fw, err := newS3ParquetFile(ctx, e.cfg.AWSRegion, e.cfg.S3Bucket, objectPath)
		if err != nil {
			return "", err
		}
		if err := writeParquet(fw, orders); err != nil {
			return "", err
		}
		return fmt.Sprintf("s3://%s/%s", e.cfg.S3Bucket, objectPath), nil
	}

	if err := os.MkdirAll(e.cfg.ExportDir, 0o755); err != nil {
		return "", fmt.Errorf("creating export dir: %w", err)
	}
	path := filepath.Join(e.cfg.ExportDir, name)
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return "", fmt.Errorf("failed to create local file writer: %w", err)
	}
	if err := writeParquet(fw, orders); err != nil {
		return "", err
	}
	return path, nil
}

func writeParquet(fw source.ParquetFile, orders []models.Order) error {
	pw, err := writer.NewParquetWriter(fw, new(OrderRecord), 4)
	if err != nil {
		return fmt.Errorf("failed to create ParquetWriter: %w", err)
	}

	for _, order := range orders {
		if err := pw.Write(flattenOrder(order)); err != nil {
			return fmt.Errorf("failed to write order %s: %w", order.ID, err)
		}
	}

	if err := pw.WriteStop(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return fw.Close()
}
