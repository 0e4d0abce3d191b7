package pipeline

import (
	"context"

	"github.com/couchcryptid/kismet-analyzer/internal/domain"
)

// AccessPointNormalizer implements Normalizer for access point rows.
type AccessPointNormalizer struct {
	filter       *domain.Filter
	useStrongest bool
}

// NewAccessPointNormalizer creates an AccessPointNormalizer. A nil filter
// accepts every access point.
func NewAccessPointNormalizer(filter *domain.Filter, useStrongest bool) *AccessPointNormalizer {
	return &AccessPointNormalizer{filter: filter, useStrongest: useStrongest}
}

func (n *AccessPointNormalizer) Normalize(_ context.Context, row domain.Row) (domain.AccessPoint, bool, error) {
	rec, err := domain.ParseRecord(row.Payload)
	if err != nil {
		return domain.AccessPoint{}, false, err
	}
	ap := domain.BuildAccessPoint(rec, n.useStrongest)
	return ap, n.filter.Accept(rec), nil
}

// DeviceNormalizer implements Normalizer for rows of any type.
type DeviceNormalizer struct {
	filter       *domain.Filter
	useStrongest bool
}

// NewDeviceNormalizer creates a DeviceNormalizer. A nil filter accepts every
// device.
func NewDeviceNormalizer(filter *domain.Filter, useStrongest bool) *DeviceNormalizer {
	return &DeviceNormalizer{filter: filter, useStrongest: useStrongest}
}

func (n *DeviceNormalizer) Normalize(_ context.Context, row domain.Row) (domain.Device, bool, error) {
	rec, err := domain.ParseRecord(row.Payload)
	if err != nil {
		return domain.Device{}, false, err
	}
	dev := domain.BuildDevice(rec, n.useStrongest)
	return dev, n.filter.Accept(rec), nil
}
