package events

import "testing"

func TestPublishOrder(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	var got []int
	for i := 1; i <= 3; i++ {
		i := i
		bus.Subscribe(PlayerDied, func(Event) { got = append(got, i) })
	}
	bus.Subscribe(PlayerRespawned, func(Event) { got = append(got, 99) })

	bus.Publish(PlayerDied, Died{Reason: "fell"})
	if len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Fatalf("delivery order = %v, want [1 2 3]", got)
	}
}

func TestPayloadDelivered(t *testing.T) {
	bus := NewBus()
	var evt Event
	bus.Subscribe(PlayerDied, func(e Event) { evt = e })
	bus.Publish(PlayerDied, Died{Reason: "hazard", Height: 4.2})

	d, ok := evt.Payload.(Died)
	if !ok || evt.Topic != PlayerDied || d.Reason != "hazard" || d.Height != 4.2 {
		t.Fatalf("unexpected event %+v", evt)
	}
}

func TestUnsubscribe(t *testing.T) {
	cases := []struct {
		name string
		run  func(bus *Bus, calls *[]string)
		want []string
	}{
		{
			name: "removed_before_publish",
			run: func(bus *Bus, calls *[]string) {
				a := bus.Subscribe(PlayerDied, func(Event) { *calls = append(*calls, "a") })
				bus.Subscribe(PlayerDied, func(Event) { *calls = append(*calls, "b") })
				bus.Unsubscribe(a)
				bus.Publish(PlayerDied, nil)
			},
			want: []string{"b"},
		},
		{
			name: "self_removal_during_delivery",
			run: func(bus *Bus, calls *[]string) {
				var a Subscription
				a = bus.Subscribe(PlayerDied, func(Event) {
					*calls = append(*calls, "a")
					bus.Unsubscribe(a)
				})
				bus.Subscribe(PlayerDied, func(Event) { *calls = append(*calls, "b") })
				bus.Publish(PlayerDied, nil)
				bus.Publish(PlayerDied, nil)
			},
			want: []string{"a", "b", "b"},
		},
		{
			name: "later_handler_removed_during_delivery",
			run: func(bus *Bus, calls *[]string) {
				var b Subscription
				bus.Subscribe(PlayerDied, func(Event) {
					*calls = append(*calls, "a")
					bus.Unsubscribe(b)
				})
				b = bus.Subscribe(PlayerDied, func(Event) { *calls = append(*calls, "b") })
				bus.Publish(PlayerDied, nil)
			},
			want: []string{"a"},
		},
		{
			name: "zero_subscription_ignored",
			run: func(bus *Bus, calls *[]string) {
				bus.Subscribe(PlayerDied, func(Event) { *calls = append(*calls, "a") })
				bus.Unsubscribe(Subscription{})
				bus.Publish(PlayerDied, nil)
			},
			want: []string{"a"},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			bus := NewBus()
			var calls []string
			c.run(bus, &calls)
			if len(calls) != len(c.want) {
				t.Fatalf("calls = %v, want %v", calls, c.want)
			}
			for i := range calls {
				if calls[i] != c.want[i] {
					t.Fatalf("calls = %v, want %v", calls, c.want)
				}
			}
		})
	}
}

func TestClose(t *testing.T) {
	bus := NewBus()
	calls := 0
	bus.Subscribe(PlayerRespawned, func(Event) { calls++ })
	bus.Close()

	bus.Publish(PlayerRespawned, nil)
	if calls != 0 {
		t.Fatalf("closed bus should not deliver")
	}
	if sub := bus.Subscribe(PlayerRespawned, func(Event) { calls++ }); sub != (Subscription{}) {
		t.Fatalf("subscribe after close should return the zero subscription")
	}
	if bus.Len(PlayerRespawned) != 0 {
		t.Fatalf("closed bus should have no subscribers")
	}
}

func TestNilBus(t *testing.T) {
	var bus *Bus
	bus.Publish(PlayerDied, nil)
	bus.Unsubscribe(bus.Subscribe(PlayerDied, func(Event) {}))
	bus.Close()
}
