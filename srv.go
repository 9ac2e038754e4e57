// SPDX-License-Identifier: GPL-3.0-or-later

package mcwire

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/netip"
	"strings"
	"time"
)

// SRVResolver abstracts the [*net.Resolver] SRV lookup.
//
// By making [*ResolveTargetFunc] depend on an abstract implementation
// we allow for unit testing and for using alternative resolvers.
type SRVResolver interface {
	LookupSRV(ctx context.Context, service, proto, name string) (string, []*net.SRV, error)
}

var _ SRVResolver = &net.Resolver{}

// NewResolveTargetFunc returns a new [*ResolveTargetFunc] with default resolver.
//
// The cfg argument contains the common configuration for mcwire operations.
//
// The logger argument is the [SLogger] to use for structured logging.
func NewResolveTargetFunc(cfg *Config, logger SLogger) *ResolveTargetFunc {
	return &ResolveTargetFunc{
		ErrClassifier: cfg.ErrClassifier,
		Logger:        logger,
		Resolver:      cfg.Resolver,
		TimeNow:       cfg.TimeNow,
	}
}

// ResolveTargetFunc rewrites the connect side of a [Target] according
// to the `_minecraft._tcp` SRV record of its host, when one exists.
//
// Only the connect side changes: the handshake side keeps advertising
// the hostname the user typed, which is what servers behind an SRV
// indirection expect to see. Hosts that are IP address literals are
// returned unchanged without a lookup, and a missing SRV record is not
// an error. Only genuine resolver failures (such as a timeout talking
// to the DNS server) fail the operation.
//
// All fields are safe to modify after construction but before first use.
// Fields must not be mutated concurrently with calls to [Call].
type ResolveTargetFunc struct {
	// ErrClassifier classifies errors for structured logging.
	//
	// Set by [NewResolveTargetFunc] from [Config.ErrClassifier].
	ErrClassifier ErrClassifier

	// Logger is the [SLogger] to use (configurable for testing or custom logging).
	//
	// Set by [NewResolveTargetFunc] to the user-provided logger.
	Logger SLogger

	// Resolver is the [SRVResolver] to use.
	//
	// Set by [NewResolveTargetFunc] from [Config.Resolver].
	Resolver SRVResolver

	// TimeNow is the function to get the current time (configurable for testing).
	//
	// Set by [NewResolveTargetFunc] from [Config.TimeNow].
	TimeNow func() time.Time
}

var _ Func[Target, Target] = &ResolveTargetFunc{}

// Call invokes the [*ResolveTargetFunc] to apply SRV indirection to the
// given [Target].
func (op *ResolveTargetFunc) Call(ctx context.Context, target Target) (Target, error) {
	// IP address literals cannot carry SRV records
	if _, err := netip.ParseAddr(target.ConnectHost); err == nil {
		return target, nil
	}

	t0 := op.TimeNow()
	op.logLookupStart(target, t0)
	_, records, err := op.Resolver.LookupSRV(ctx, "minecraft", "tcp", target.ConnectHost)

	if err != nil {
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
			op.logLookupDone(target, t0, nil)
			return target, nil
		}
		op.logLookupDone(target, t0, err)
		return Target{}, err
	}

	if len(records) > 0 {
		target.ConnectHost = strings.TrimSuffix(records[0].Target, ".")
		target.ConnectPort = records[0].Port
	}
	op.logLookupDone(target, t0, nil)
	return target, nil
}

func (op *ResolveTargetFunc) logLookupStart(target Target, t0 time.Time) {
	op.Logger.Info(
		"srvLookupStart",
		slog.String("serverHost", target.Host),
		slog.Time("t", t0),
	)
}

func (op *ResolveTargetFunc) logLookupDone(target Target, t0 time.Time, err error) {
	op.Logger.Info(
		"srvLookupDone",
		slog.String("connectAddr", target.ConnectAddr()),
		slog.Any("err", err),
		slog.String("errClass", op.ErrClassifier.Classify(err)),
		slog.String("serverHost", target.Host),
		slog.Time("t0", t0),
		slog.Time("t", op.TimeNow()),
	)
}
