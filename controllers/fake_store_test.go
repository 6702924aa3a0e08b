package controllers_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"Gin_postgres_redis_inventory_ledger/controllers"
	"Gin_postgres_redis_inventory_ledger/db"
	"Gin_postgres_redis_inventory_ledger/ledger"
	"Gin_postgres_redis_inventory_ledger/models"

	"github.com/google/uuid"
)

// memRepo 内存版仓库：账号、目录、单据、台账全在一把锁下
type memRepo struct {
	mu         sync.Mutex
	users      map[string]*models.User
	items      []*models.Item
	stock      map[string]int
	deliveries []*models.Delivery
	checkouts  []*models.Checkout
	now        func() time.Time

	listErr error
}

func newMemRepo() *memRepo {
	return &memRepo{
		users: make(map[string]*models.User),
		stock: make(map[string]int),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

var _ ledger.Store = (*memRepo)(nil)

func (m *memRepo) CreateUser(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u.Email = models.NormalizeEmail(u.Email)
	for _, x := range m.users {
		if x.Email == u.Email {
			return db.ErrUserExists
		}
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.CreatedOn = m.now()
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memRepo) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	email = models.NormalizeEmail(email)
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, db.ErrNotFound
}

func (m *memRepo) FindUserByID(_ context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memRepo) deleteUser(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, id)
}

func (m *memRepo) CreateItem(_ context.Context, it *models.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, x := range m.items {
		if x.SerialNo == it.SerialNo {
			return db.ErrItemExists
		}
	}
	it.CreatedAt = m.now()
	it.UpdatedAt = it.CreatedAt
	cp := *it
	m.items = append(m.items, &cp)
	m.stock[it.ID] = 0
	return nil
}

func (m *memRepo) ListItems(_ context.Context) ([]models.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]models.Item, 0, len(m.items))
	for _, it := range m.items {
		out = append(out, *it)
	}
	return out, nil
}

func (m *memRepo) FindItemBySerial(_ context.Context, serialNo string) (*models.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, it := range m.items {
		if it.SerialNo == serialNo {
			cp := *it
			return &cp, nil
		}
	}
	return nil, db.ErrNotFound
}

func (m *memRepo) itemByID(id string) *models.Item {
	for _, it := range m.items {
		if it.ID == id {
			return it
		}
	}
	return nil
}

func (m *memRepo) MissingItems(_ context.Context, ids []string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := map[string]bool{}
	var missing []string
	for _, id := range ids {
		if m.itemByID(id) == nil && !seen[id] {
			missing = append(missing, id)
		}
		seen[id] = true
	}
	return missing, nil
}

func (m *memRepo) CreateDelivery(_ context.Context, d *models.Delivery) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, x := range m.deliveries {
		if x.DeliveryNumber == d.DeliveryNumber {
			return db.ErrDeliveryExists
		}
	}
	d.CreatedAt = m.now()
	d.UpdatedAt = d.CreatedAt
	m.deliveries = append(m.deliveries, d)
	return nil
}

func (m *memRepo) CreateCheckout(_ context.Context, co *models.Checkout) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, x := range m.checkouts {
		if x.CheckoutNumber == co.CheckoutNumber {
			return db.ErrCheckoutExists
		}
	}
	co.CreatedAt = m.now()
	co.UpdatedAt = co.CreatedAt
	m.checkouts = append(m.checkouts, co)
	return nil
}

func (m *memRepo) DeliveryNumberExists(_ context.Context, number string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.deliveries {
		if d.DeliveryNumber == number {
			return true, nil
		}
	}
	return false, nil
}

func (m *memRepo) CheckoutNumberExists(_ context.Context, number string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, co := range m.checkouts {
		if co.CheckoutNumber == number {
			return true, nil
		}
	}
	return false, nil
}

func (m *memRepo) summary(id string) *db.ItemSummary {
	it := m.itemByID(id)
	if it == nil {
		return nil
	}
	return &db.ItemSummary{ID: it.ID, ItemType: it.ItemType, ItemDesc: it.ItemDesc, SizeSource: it.SizeSource, SerialNo: it.SerialNo}
}

func (m *memRepo) DeliveriesCreatedBetween(_ context.Context, start, end time.Time) ([]db.DeliveryReportRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows := []db.DeliveryReportRow{}
	for _, d := range m.deliveries {
		if d.CreatedAt.Before(start) || d.CreatedAt.After(end) {
			continue
		}
		row := db.DeliveryReportRow{ID: d.ID, DeliveryNumber: d.DeliveryNumber, DeliveryDate: d.DeliveryDate, CreatedAt: d.CreatedAt}
		for _, l := range d.Lines {
			row.Items = append(row.Items, db.ReportLine{Item: m.summary(l.ItemID), Quantity: l.Quantity})
		}
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].CreatedAt.After(rows[j].CreatedAt) })
	return rows, nil
}

func (m *memRepo) CheckoutsDatedBetween(_ context.Context, start, end time.Time) ([]db.CheckoutReportRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows := []db.CheckoutReportRow{}
	for _, co := range m.checkouts {
		if co.CheckoutDate.Before(start) || co.CheckoutDate.After(end) {
			continue
		}
		row := db.CheckoutReportRow{ID: co.ID, CheckoutNumber: co.CheckoutNumber, CheckoutDate: co.CheckoutDate, CreatedAt: co.CreatedAt}
		for _, l := range co.Lines {
			row.Items = append(row.Items, db.ReportLine{Item: m.summary(l.ItemID), Quantity: l.Quantity})
		}
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].CheckoutDate.After(rows[j].CheckoutDate) })
	return rows, nil
}

func (m *memRepo) AddStock(_ context.Context, itemID string, qty int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stock[itemID] += qty
	return m.stock[itemID], nil
}

func (m *memRepo) RemoveStock(_ context.Context, itemID string, qty int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.stock[itemID]
	if !ok {
		return 0, ledger.ErrNotInInventory
	}
	if cur < qty {
		return cur, ledger.ErrInsufficientStock
	}
	m.stock[itemID] = cur - qty
	return m.stock[itemID], nil
}

func (m *memRepo) ListInventory(_ context.Context) ([]db.InventoryRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	rows := make([]db.InventoryRow, 0, len(m.stock))
	for _, it := range m.items {
		q, ok := m.stock[it.ID]
		if !ok {
			continue
		}
		rows = append(rows, db.InventoryRow{ID: "inv-" + it.ID, Item: m.summary(it.ID), Quantity: q})
	}
	return rows, nil
}

func (m *memRepo) quantity(itemID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stock[itemID]
}

// countingCache 记录读写次数，方便断言缓存行为；和 Redis 实现一样按代号丢弃过期回写
type countingCache struct {
	mu          sync.Mutex
	gen         int64
	rows        []db.InventoryRow
	hit         bool
	sets        int
	stale       int
	invalidates int
}

func (c *countingCache) Get(context.Context) ([]db.InventoryRow, int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rows, c.gen, c.hit
}

func (c *countingCache) Set(_ context.Context, gen int64, rows []db.InventoryRow) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		c.stale++
		return
	}
	c.rows, c.hit = rows, true
	c.sets++
}

func (c *countingCache) Invalidate(context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.rows, c.hit = nil, false
	c.invalidates++
}

// gatedInventory 读完库存后停在 loaded，等 release 放行
type gatedInventory struct {
	inner   controllers.InventoryStore
	loaded  chan struct{}
	release chan struct{}
}

func (g *gatedInventory) ListInventory(ctx context.Context) ([]db.InventoryRow, error) {
	rows, err := g.inner.ListInventory(ctx)
	close(g.loaded)
	<-g.release
	return rows, err
}

var errBoom = errors.New("boom")
