package cart

import (
	"errors"
	"math"
	"sync"

	"github.com/medimart/medimart/internal/model"
)

// Корзина живёт только на клиенте: на бэкенд уходит лишь оформленный заказ

var (
	ErrQuantityIncorrect = errors.New("quantity must be positive")
	ErrOutOfStock        = errors.New("not enough stock")
	ErrEmptyCart         = errors.New("cart is empty")
)

// Key: позиция корзины определяется аптекой и названием препарата
type Key struct {
	PharmacyID   string
	MedicineName string
}

type Entry struct {
	Pharmacy     model.Pharmacy // снапшот на момент добавления
	MedicineName string
	Price        float64
	Quantity     int
}

func (e Entry) LineTotal() float64 {
	return round2(e.Price * float64(e.Quantity))
}

type Cart struct {
	mu      sync.Mutex
	entries map[Key]*Entry
	order   []Key // порядок добавления, для стабильного вывода
}

func New() *Cart {
	return &Cart{entries: make(map[Key]*Entry)}
}

// Add добавляет количество к позиции, создавая её при необходимости
func (c *Cart) Add(pharmacy model.Pharmacy, medicine model.Medicine, quantity int) error {
	if quantity <= 0 {
		return ErrQuantityIncorrect
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	key := Key{PharmacyID: pharmacy.ID, MedicineName: medicine.MedicineName}
	entry, ok := c.entries[key]

	existing := 0
	if ok {
		existing = entry.Quantity
	}
	// нулевой Stock означает, что остаток неизвестен, и не ограничивает
	if medicine.Stock > 0 && existing+quantity > medicine.Stock {
		return ErrOutOfStock
	}

	if !ok {
		entry = &Entry{
			Pharmacy:     pharmacy,
			MedicineName: medicine.MedicineName,
			Price:        medicine.SellingPrice,
		}
		c.entries[key] = entry
		c.order = append(c.order, key)
	}
	entry.Quantity += quantity
	return nil
}

// Remove уменьшает количество; позиция с нулём удаляется целиком
func (c *Cart) Remove(pharmacyID string, medicineName string, quantity int) error {
	if quantity <= 0 {
		return ErrQuantityIncorrect
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	key := Key{PharmacyID: pharmacyID, MedicineName: medicineName}
	entry, ok := c.entries[key]
	if !ok {
		return nil
	}

	entry.Quantity -= quantity
	if entry.Quantity <= 0 {
		delete(c.entries, key)
		for i, k := range c.order {
			if k == key {
				c.order = append(c.order[:i], c.order[i+1:]...)
				break
			}
		}
	}
	return nil
}

// Quantity — количество по позиции, 0 если позиции нет
func (c *Cart) Quantity(pharmacyID string, medicineName string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[Key{PharmacyID: pharmacyID, MedicineName: medicineName}]
	if !ok {
		return 0
	}
	return entry.Quantity
}

func (c *Cart) Items() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]Entry, 0, len(c.order))
	for _, key := range c.order {
		items = append(items, *c.entries[key])
	}
	return items
}

func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total float64
	for _, entry := range c.entries {
		total += entry.LineTotal()
	}
	return round2(total)
}

func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[Key]*Entry)
	c.order = nil
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
