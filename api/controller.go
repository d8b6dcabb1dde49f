package api

import (
	"context"
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/qwiicgo/button-backend/api/model"
	"github.com/qwiicgo/button-backend/button"
)

const boardID = 1

type Controller interface {
	DB() *gorm.DB
	Device() *button.Device
	Settings() *button.BoardSettings
	EventChannel(ctx context.Context) chan *model.ButtonEvent
	SetFakeStatus(pressed, clicked bool)
	Close() error
}

type controller struct {
	db       *gorm.DB
	bus      i2c.BusCloser
	dev      *button.Device
	worker   button.Worker
	mutex    sync.RWMutex
	settings *button.BoardSettings

	eventChannels map[string]chan *model.ButtonEvent

	fakeTransport *button.FakeTransport
}

// NewController brings up the whole backend: settings file, sqlite event
// log, I2C bus (or the fake transport), the device itself and the poll
// worker. With fakeValues set no hardware is touched.
func NewController(fakeValues bool, basePath string) (Controller, error) {

	settingsFileName := "boardSettings.yml"

	var settings button.BoardSettings

	if _, err := os.Stat(basePath + settingsFileName); errors.Is(err, os.ErrNotExist) {
		settings = button.DefaultBoardSettings
		data, err := yaml.Marshal(settings)
		if err != nil {
			return nil, err
		}

		if err := ioutil.WriteFile(basePath+settingsFileName, data, 0644); err != nil {
			return nil, err
		}
	} else {
		data, err := ioutil.ReadFile(basePath + settingsFileName)
		if err != nil {
			return nil, err
		}
		err = yaml.Unmarshal(data, &settings)
		if err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(basePath+"db.sqlite"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, err
	}

	db.AutoMigrate(&model.Board{})
	db.AutoMigrate(&model.ButtonEvent{})

	c := controller{
		db:            db,
		settings:      &settings,
		eventChannels: make(map[string]chan *model.ButtonEvent),
	}

	var transport button.Transport
	if fakeValues {
		c.fakeTransport = button.NewFakeTransport()
		transport = c.fakeTransport
	} else {
		_, err = host.Init()
		if err != nil {
			return nil, err
		}

		bus, err := i2creg.Open(settings.Bus)
		if err != nil {
			return nil, err
		}

		c.bus = bus
		transport = button.NewPeriphTransport(bus)
	}

	c.dev = button.New(transport, settings.Address)

	if !c.dev.Begin() {
		c.Close()
		return nil, fmt.Errorf("no button board found at address %#02x on bus %s",
			settings.Address, settings.Bus)
	}

	if err := c.dev.SetDebounceTime(settings.DebounceTimeMs); err != nil {
		c.Close()
		return nil, fmt.Errorf("set debounce time: %w", err)
	}

	if err := c.dev.LEDOff(); err != nil {
		c.Close()
		return nil, fmt.Errorf("reset led: %w", err)
	}

	firmware, err := c.dev.FirmwareVersion()
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("read firmware version: %w", err)
	}

	var board model.Board
	r := db.First(&board, boardID)
	created := r.Error != nil
	if created {
		board = model.Board{
			ID:   boardID,
			Name: "Button 1",
		}
	}
	board.Address = c.dev.Address()
	board.Firmware = fmt.Sprintf("%d.%d", firmware>>8, firmware&0xFF)
	board.DebounceTimeMs = settings.DebounceTimeMs
	if created {
		db.Create(&board)
	} else {
		db.Save(&board)
	}

	interval := time.Duration(settings.PollIntervalMs) * time.Millisecond
	c.worker = button.NewWorker(c.dev, interval)

	c.consumeEvents()
	c.worker.Start()
	return &c, nil
}

// consumeEvents persists every observed edge and fans it out to the
// websocket subscribers. The LED mirrors the contact: pulsing while held,
// dark once released (a click fires on release).
func (c *controller) consumeEvents() {
	go func() {
		ch := c.worker.Events()

		for ev := range ch {
			switch ev.Kind {
			case button.EventPressed:
				led := c.settings.LED
				if err := c.dev.LEDConfig(led.Brightness, led.CycleTimeMs, led.OffTimeMs); err != nil {
					log.Println("led config:", err)
				}
			case button.EventClicked:
				if err := c.dev.LEDOff(); err != nil {
					log.Println("led off:", err)
				}
			}

			event := model.ButtonEvent{
				BoardID:   boardID,
				Kind:      ev.Kind,
				CreatedAt: ev.At,
			}
			c.db.Create(&event)

			c.mutex.RLock()
			for _, out := range c.eventChannels {
				out <- &event
			}
			c.mutex.RUnlock()
		}
	}()
}

func (c *controller) DB() *gorm.DB {
	return c.db
}

func (c *controller) Device() *button.Device {
	return c.dev
}

func (c *controller) Settings() *button.BoardSettings {
	return c.settings
}

// EventChannel registers a subscriber for live button events. The channel
// is removed again when ctx is done.
func (c *controller) EventChannel(ctx context.Context) chan *model.ButtonEvent {
	ch := make(chan *model.ButtonEvent)
	uuid, _ := uuid.NewUUID()

	c.mutex.Lock()
	c.eventChannels[uuid.String()] = ch
	c.mutex.Unlock()

	go func() {
		<-ctx.Done()
		c.mutex.Lock()
		delete(c.eventChannels, uuid.String())
		c.mutex.Unlock()

		log.Println("ws client closed", uuid.String())
	}()

	return ch
}

// SetFakeStatus drives the fake transport's status register. Only has an
// effect in fake mode.
func (c *controller) SetFakeStatus(pressed, clicked bool) {
	if c.fakeTransport != nil {
		c.fakeTransport.SetStatus(pressed, clicked)
	}
}

func (c *controller) Close() error {
	if c.worker != nil {
		c.worker.Stop()
	}
	if c.bus != nil {
		return c.bus.Close()
	}
	return nil
}
