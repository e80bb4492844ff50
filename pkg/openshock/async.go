package openshock

import "context"

// Future is the pending result of an AsyncClient call
type Future[T any] struct {
	done chan struct{}
	val  T
	err  error
}

func goFuture[T any](fn func() (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.val, f.err = fn()
	}()
	return f
}

// Done is closed once the result is available
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the call completes or ctx is done. Giving up on ctx does
// not cancel the call; cancel the context passed to the AsyncClient method for that.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case <-f.done:
		return f.val, f.err
	}
}

// AsyncClient issues the same requests as Client without blocking the caller.
// Each call runs on its own goroutine and returns a Future.
type AsyncClient struct {
	c *Client
}

// NewAsync wraps c. Configuration changes made through c apply to calls
// started afterwards.
func NewAsync(c *Client) *AsyncClient {
	return &AsyncClient{c: c}
}

// Client returns the wrapped synchronous client
func (a *AsyncClient) Client() *Client {
	return a.c
}

// ListDevices is the non-blocking form of Client.ListDevices
func (a *AsyncClient) ListDevices(ctx context.Context, opts ...RequestOption) *Future[*DeviceListResponse] {
	return goFuture(func() (*DeviceListResponse, error) { return a.c.ListDevices(ctx, opts...) })
}

// GetDevice is the non-blocking form of Client.GetDevice
func (a *AsyncClient) GetDevice(ctx context.Context, deviceID string, opts ...RequestOption) *Future[*DeviceResponse] {
	return goFuture(func() (*DeviceResponse, error) { return a.c.GetDevice(ctx, deviceID, opts...) })
}

// ListShockers is the non-blocking form of Client.ListShockers
func (a *AsyncClient) ListShockers(ctx context.Context, deviceID string, opts ...RequestOption) *Future[*ShockerListResponse] {
	return goFuture(func() (*ShockerListResponse, error) { return a.c.ListShockers(ctx, deviceID, opts...) })
}

// GetShocker is the non-blocking form of Client.GetShocker
func (a *AsyncClient) GetShocker(ctx context.Context, shockerID string, opts ...RequestOption) *Future[*ShockerResponse] {
	return goFuture(func() (*ShockerResponse, error) { return a.c.GetShocker(ctx, shockerID, opts...) })
}

// SendAction is the non-blocking form of Client.SendAction
func (a *AsyncClient) SendAction(ctx context.Context, shockerID string, controlType ControlType, intensity, duration int, exclusive bool, opts ...RequestOption) *Future[*ActionResponse] {
	return goFuture(func() (*ActionResponse, error) {
		return a.c.SendAction(ctx, shockerID, controlType, intensity, duration, exclusive, opts...)
	})
}

// Shock is the non-blocking form of Client.Shock
func (a *AsyncClient) Shock(ctx context.Context, shockerID string, intensity, duration int, opts ...RequestOption) *Future[*ActionResponse] {
	return goFuture(func() (*ActionResponse, error) { return a.c.Shock(ctx, shockerID, intensity, duration, opts...) })
}

// Vibrate is the non-blocking form of Client.Vibrate
func (a *AsyncClient) Vibrate(ctx context.Context, shockerID string, intensity, duration int, opts ...RequestOption) *Future[*ActionResponse] {
	return goFuture(func() (*ActionResponse, error) { return a.c.Vibrate(ctx, shockerID, intensity, duration, opts...) })
}

// Beep is the non-blocking form of Client.Beep
func (a *AsyncClient) Beep(ctx context.Context, shockerID string, duration int, opts ...RequestOption) *Future[*ActionResponse] {
	return goFuture(func() (*ActionResponse, error) { return a.c.Beep(ctx, shockerID, duration, opts...) })
}

// Stop is the non-blocking form of Client.Stop
func (a *AsyncClient) Stop(ctx context.Context, shockerID string, opts ...RequestOption) *Future[*ActionResponse] {
	return goFuture(func() (*ActionResponse, error) { return a.c.Stop(ctx, shockerID, opts...) })
}
